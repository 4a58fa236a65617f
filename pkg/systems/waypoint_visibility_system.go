package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/entities"
	"github.com/gonewx/scrollstory/pkg/motion"
)

const (
	// ReachedOpacity 透明度达到该值视为到达路标
	ReachedOpacity = 0.9
	// resetOpacity 透明度低于该值后可以再次触发到达
	resetOpacity = 0.5
)

// WaypointVisibilitySystem 按距离更新路标文字的透明度。
//
// opacity = clamp(1 - d/threshold, 0, 1)，d 为观察点到路标的距离。
// 观察点为旅行者或相机（VisibilityConfig.Source）。
type WaypointVisibilitySystem struct {
	entityManager  *ecs.EntityManager
	travelerEntity ecs.EntityID
	cameraEntity   ecs.EntityID
	waypoints      []ecs.EntityID

	metric    motion.DistanceMetric
	axis      motion.Axis
	threshold float64
	source    string

	// OnWaypointReached 旅行者到达路标时回调（提示音、相机重新补间）
	OnWaypointReached func(index int)

	current int
}

// NewWaypointVisibilitySystem 创建可见度系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 故事配置（已验证）
//   - story: 场景实体引用
func NewWaypointVisibilitySystem(em *ecs.EntityManager, cfg *config.StoryConfig, story *entities.StoryEntities) *WaypointVisibilitySystem {
	metric, _ := motion.ParseDistanceMetric(cfg.Visibility.Distance)
	return &WaypointVisibilitySystem{
		entityManager:  em,
		travelerEntity: story.Traveler,
		cameraEntity:   story.Camera,
		waypoints:      story.Waypoints,
		metric:         metric,
		axis:           cfg.TravelerAxis(),
		threshold:      cfg.Visibility.Threshold,
		source:         cfg.Visibility.Source,
		current:        -1,
	}
}

// Update 重新计算所有路标的透明度
func (ws *WaypointVisibilitySystem) Update(dt float64) {
	from, ok := ws.observer()
	if !ok {
		return
	}

	best := -1
	bestOpacity := 0.0
	for _, id := range ws.waypoints {
		wp, ok := ecs.GetComponent[*components.WaypointComponent](ws.entityManager, id)
		if !ok {
			continue
		}

		d := motion.Distance(ws.metric, ws.axis, from, wp.Position)
		wp.Opacity = motion.Opacity(d, ws.threshold)
		ws.setTextOpacity(wp.LabelEntity, wp.Opacity)
		ws.setTextOpacity(wp.InfoEntity, wp.Opacity)

		if wp.Opacity > bestOpacity {
			best = wp.Index
			bestOpacity = wp.Opacity
		}

		switch {
		case !wp.Reached && wp.Opacity >= ReachedOpacity:
			wp.Reached = true
			log.Printf("[WaypointVisibilitySystem] Reached waypoint %d (%s)", wp.Index, wp.Label)
			if ws.OnWaypointReached != nil {
				ws.OnWaypointReached(wp.Index)
			}
		case wp.Reached && wp.Opacity < resetOpacity:
			wp.Reached = false
		}
	}
	ws.current = best
}

// Current 返回当前最可见的路标序号
//
// 返回:
//   - int: 路标序号
//   - bool: 是否有任何路标可见
func (ws *WaypointVisibilitySystem) Current() (int, bool) {
	return ws.current, ws.current >= 0
}

// Opacity 返回第 index 个路标的透明度
func (ws *WaypointVisibilitySystem) Opacity(index int) float64 {
	if index < 0 || index >= len(ws.waypoints) {
		return 0
	}
	wp, ok := ecs.GetComponent[*components.WaypointComponent](ws.entityManager, ws.waypoints[index])
	if !ok {
		return 0
	}
	return wp.Opacity
}

// observer 返回距离计算的起点
//
// camera 来源使用渲染时的相机位置（包含鼠标视差）。
func (ws *WaypointVisibilitySystem) observer() (mgl64.Vec3, bool) {
	if ws.source == config.SourceCamera {
		cam, ok := ecs.GetComponent[*components.CameraComponent](ws.entityManager, ws.cameraEntity)
		if !ok {
			return mgl64.Vec3{}, false
		}
		return cam.EyePosition(), true
	}

	transform, ok := ecs.GetComponent[*components.TransformComponent](ws.entityManager, ws.travelerEntity)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return transform.Position, true
}

func (ws *WaypointVisibilitySystem) setTextOpacity(id ecs.EntityID, opacity float64) {
	if tc, ok := ecs.GetComponent[*components.TextComponent](ws.entityManager, id); ok {
		tc.Opacity = opacity
	}
}
