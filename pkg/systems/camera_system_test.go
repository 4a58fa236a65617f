package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/entities"
)

type fixedMouse struct{ pos mgl64.Vec2 }

func (m fixedMouse) Mouse() mgl64.Vec2 { return m.pos }

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

// newFollowingCamera 创建已跳过标题、处于跟随状态的场景
func newFollowingCamera(t *testing.T, mutate func(*config.StoryConfig)) (*ecs.EntityManager, *entities.StoryEntities, *TravelerSystem, *CameraSystem) {
	t.Helper()
	cfg := loadStory(t, exampleStoryYAML)
	if mutate != nil {
		mutate(cfg)
	}
	em, story := buildStory(t, cfg, entities.StoryOptions{SkipTitle: true})
	ts := NewTravelerSystem(em, nil, story.Traveler)
	cs := NewCameraSystem(em, cfg, story, nil)
	return em, story, ts, cs
}

func TestCameraSystemDirectFollow(t *testing.T) {
	em, story, ts, cs := newFollowingCamera(t, nil)

	ts.ApplyDelta(100)
	cs.Update(1.0 / 60)

	cam, _ := ecs.GetComponent[*components.CameraComponent](em, story.Camera)
	want := mgl64.Vec3{0, 0, -350}
	if cam.Position != want {
		t.Errorf("direct follow: got %v, want %v", cam.Position, want)
	}
	if cs.IsAnimating() {
		t.Error("direct mode never animates")
	}
	if cam.LookAt != (mgl64.Vec3{0, 0, 800}) {
		t.Errorf("expected to look at earth, got %v", cam.LookAt)
	}
	if cs.Projection().Position != want {
		t.Errorf("projection not synced: %v", cs.Projection().Position)
	}
}

func TestCameraSystemTweenOnChange(t *testing.T) {
	em, story, ts, cs := newFollowingCamera(t, func(cfg *config.StoryConfig) {
		cfg.Camera.Follow.Mode = config.FollowTween
		cfg.Camera.Follow.Retrigger = config.RetriggerOnChange
		cfg.Camera.Follow.Duration = 1
		cfg.Camera.Follow.Easing = "linear"
	})
	cam, _ := ecs.GetComponent[*components.CameraComponent](em, story.Camera)
	start := cam.Position

	ts.ApplyDelta(100)
	cs.Update(0.5)
	if !cs.IsAnimating() {
		t.Fatal("expected tween after target change")
	}
	mid := start.Add(mgl64.Vec3{0, 0, 50})
	if !vecNear(cam.Position, mid, 1e-9) {
		t.Errorf("half way: got %v, want %v", cam.Position, mid)
	}

	// 目标不变时不会重新开始补间
	cs.Update(0.5)
	if cs.IsAnimating() {
		t.Error("tween should finish after its duration")
	}
	if !vecNear(cam.Position, start.Add(mgl64.Vec3{0, 0, 100}), 1e-9) {
		t.Errorf("end: got %v", cam.Position)
	}
}

func TestCameraSystemTweenEveryFrame(t *testing.T) {
	em, story, ts, cs := newFollowingCamera(t, func(cfg *config.StoryConfig) {
		cfg.Camera.Follow.Mode = config.FollowTween
		cfg.Camera.Follow.Retrigger = config.RetriggerEveryFrame
		cfg.Camera.Follow.Duration = 1
		cfg.Camera.Follow.Easing = "linear"
	})
	cam, _ := ecs.GetComponent[*components.CameraComponent](em, story.Camera)

	ts.ApplyDelta(100)
	target := cam.Target.Add(mgl64.Vec3{0, 0, 100})

	// 每帧从当前位置重新开始，只前进剩余距离的 dt/duration
	prevGap := cam.Position.Sub(target).Len()
	for i := 0; i < 10; i++ {
		cs.Update(0.1)
		gap := cam.Position.Sub(target).Len()
		if gap >= prevGap {
			t.Fatalf("frame %d: camera did not approach target", i)
		}
		if math.Abs(gap-prevGap*0.9) > 1e-6 {
			t.Errorf("frame %d: gap %v, want %v", i, gap, prevGap*0.9)
		}
		prevGap = gap
	}
	if prevGap < 1 {
		t.Error("everyFrame retrigger should lag behind the target")
	}
}

func TestCameraSystemTweenOnWaypoint(t *testing.T) {
	em, story, ts, cs := newFollowingCamera(t, func(cfg *config.StoryConfig) {
		cfg.Camera.Follow.Mode = config.FollowTween
		cfg.Camera.Follow.Retrigger = config.RetriggerOnWaypoint
		cfg.Camera.Follow.Duration = 1
	})
	cam, _ := ecs.GetComponent[*components.CameraComponent](em, story.Camera)
	start := cam.Position

	ts.ApplyDelta(200)
	cs.Update(0.1)
	if cam.Position != start || cs.IsAnimating() {
		t.Fatal("camera should wait for a waypoint")
	}

	cs.OnWaypointReached(0)
	cs.Update(0.1)
	if !cs.IsAnimating() {
		t.Fatal("waypoint should start a tween")
	}

	cs.StopAnimation()
	if cam.Position != start.Add(mgl64.Vec3{0, 0, 200}) {
		t.Errorf("StopAnimation should jump to target, got %v", cam.Position)
	}
}

func TestCameraSystemNotFollowing(t *testing.T) {
	cfg := loadStory(t, exampleStoryYAML)
	em, story := buildStory(t, cfg, entities.StoryOptions{})
	ts := NewTravelerSystem(em, nil, story.Traveler)
	cs := NewCameraSystem(em, cfg, story, nil)

	ts.ApplyDelta(300)
	cs.Update(0.1)

	cam, _ := ecs.GetComponent[*components.CameraComponent](em, story.Camera)
	if cam.Position != (mgl64.Vec3{0, 0, -600}) {
		t.Errorf("camera should stay at the title position, got %v", cam.Position)
	}
}

func TestCameraSystemParallax(t *testing.T) {
	cfg := loadStory(t, exampleStoryYAML)
	cfg.Camera.Parallax = 4
	em, story := buildStory(t, cfg, entities.StoryOptions{SkipTitle: true})
	cs := NewCameraSystem(em, cfg, story, fixedMouse{pos: mgl64.Vec2{1, 0}})

	cs.Update(0)
	cam, _ := ecs.GetComponent[*components.CameraComponent](em, story.Camera)
	if math.Abs(cam.ParallaxOffset.Len()-4) > 1e-9 {
		t.Errorf("expected parallax offset of length 4, got %v", cam.ParallaxOffset)
	}
	if math.Abs(cam.ParallaxOffset.Y()) > 1e-9 {
		t.Errorf("horizontal mouse should not move the camera vertically: %v", cam.ParallaxOffset)
	}
	if cs.Projection().Position != cam.EyePosition() {
		t.Error("projection should use the eye position")
	}
	// 视差不影响跟随位置
	if cam.Position != cam.Target {
		t.Errorf("parallax must not change the follow position")
	}
}

func TestCameraSystemLookAtTraveler(t *testing.T) {
	em, story, ts, cs := newFollowingCamera(t, func(cfg *config.StoryConfig) {
		cfg.Camera.LookAt = "traveler"
	})
	ts.ApplyDelta(50)
	cs.Update(0)

	cam, _ := ecs.GetComponent[*components.CameraComponent](em, story.Camera)
	if cam.LookAt != (mgl64.Vec3{0, 0, -350}) {
		t.Errorf("expected to look at traveler, got %v", cam.LookAt)
	}
}
