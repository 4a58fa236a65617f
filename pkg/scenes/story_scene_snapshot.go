package scenes

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/projection"
)

// WaypointView 一个路标的当前状态
type WaypointView struct {
	Index    int
	Label    string
	Info     string
	Position mgl64.Vec3
	Rotation float64
	Opacity  float64
	Reached  bool
}

// Snapshot 场景在某一帧的只读快照
type Snapshot struct {
	EntryState string
	Gate       bool
	Progress   float64
	Traveler   mgl64.Vec3
	Camera     mgl64.Vec3
	// Current 当前路标序号，-1 表示没有
	Current      int
	ReachedCount int
	Waypoints    []WaypointView
}

// Snapshot 读取当前帧的状态
func (s *StoryScene) Snapshot() Snapshot {
	snap := Snapshot{
		EntryState:   s.entrySystem.State(),
		Gate:         s.controller.Gate,
		Progress:     s.travelerSystem.Progress(),
		Current:      -1,
		ReachedCount: s.reachedCount,
	}
	if tf, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.story.Traveler); ok {
		snap.Traveler = tf.Position
	}
	if cam, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.story.Camera); ok {
		snap.Camera = cam.EyePosition()
	}
	if idx, ok := s.visibilitySystem.Current(); ok {
		snap.Current = idx
	}

	snap.Waypoints = make([]WaypointView, 0, len(s.story.Waypoints))
	for _, id := range s.story.Waypoints {
		wp, ok := ecs.GetComponent[*components.WaypointComponent](s.entityManager, id)
		if !ok {
			continue
		}
		snap.Waypoints = append(snap.Waypoints, WaypointView{
			Index:    wp.Index,
			Label:    wp.Label,
			Info:     wp.Info,
			Position: wp.Position,
			Rotation: wp.Rotation,
			Opacity:  wp.Opacity,
			Reached:  wp.Reached,
		})
	}
	return snap
}

// Projection 场景使用的投影相机（与渲染共用）
func (s *StoryScene) Projection() *projection.Camera {
	return s.cameraSystem.Projection()
}

// Config 场景的故事配置
func (s *StoryScene) Config() *config.StoryConfig {
	return s.cfg
}

// StarPositions 星点的世界坐标
func (s *StoryScene) StarPositions() []mgl64.Vec3 {
	sf, ok := ecs.GetComponent[*components.StarfieldComponent](s.entityManager, s.story.Stars)
	if !ok {
		return nil
	}
	out := make([]mgl64.Vec3, len(sf.Points))
	for i, p := range sf.Points {
		out[i] = sf.Center.Add(p)
	}
	return out
}
