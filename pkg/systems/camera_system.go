package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/entities"
	"github.com/gonewx/scrollstory/pkg/projection"
)

// MouseSource 提供归一化鼠标位置（[-1,1]，y 向上）
type MouseSource interface {
	Mouse() mgl64.Vec2
}

// CameraSystem 管理相机跟随、补间和视差。
//
// 跟随目标为旅行者位置 + Offset：
//   - direct 模式每帧直接放到目标位置
//   - tween 模式按 Retrigger 策略从当前位置补间到目标
//
// 每帧结束时把结果写入透视相机，供渲染系统使用。
type CameraSystem struct {
	entityManager  *ecs.EntityManager
	cameraEntity   ecs.EntityID
	travelerEntity ecs.EntityID
	earthEntity    ecs.EntityID
	lookAt         config.LookAtTarget
	mouse          MouseSource

	camera *projection.Camera

	// waypointPending onWaypoint 模式下，下一帧重新补间
	waypointPending bool
}

// NewCameraSystem 创建相机系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 故事配置（已验证）
//   - story: 场景实体引用
//   - mouse: 鼠标位置来源，可为 nil（无视差）
func NewCameraSystem(em *ecs.EntityManager, cfg *config.StoryConfig, story *entities.StoryEntities, mouse MouseSource) *CameraSystem {
	lookAt, _ := config.ParseLookAt(cfg.Camera.LookAt)
	cs := &CameraSystem{
		entityManager:  em,
		cameraEntity:   story.Camera,
		travelerEntity: story.Traveler,
		earthEntity:    story.Earth,
		lookAt:         lookAt,
		mouse:          mouse,
		camera: projection.NewCamera(cfg.Camera.Fov, cfg.Camera.Near, cfg.Camera.Far,
			float64(cfg.Window.Width), float64(cfg.Window.Height)),
	}
	cs.syncProjection()
	return cs
}

// Projection 返回透视相机
func (cs *CameraSystem) Projection() *projection.Camera {
	return cs.camera
}

// Update 更新相机位置
func (cs *CameraSystem) Update(dt float64) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	travelerPos := cs.positionOf(cs.travelerEntity)
	cam.LookAt = cs.lookAt.Resolve(cs.positionOf(cs.earthEntity), travelerPos)

	if cam.Following {
		cs.follow(cam, travelerPos.Add(cam.Offset))
	}
	cs.waypointPending = false

	if cam.Tween != nil && cam.Tween.Active() {
		cam.Position = cam.Tween.Advance(dt)
	}
	cam.IsAnimating = cam.Tween != nil && cam.Tween.Active()

	cs.syncProjection()
}

// follow 按模式和重新触发策略追踪目标
func (cs *CameraSystem) follow(cam *components.CameraComponent, target mgl64.Vec3) {
	if cam.Mode == config.FollowDirect {
		cam.Target = target
		cam.Position = target
		if cam.Tween != nil {
			cam.Tween.Stop()
		}
		return
	}

	switch cam.Retrigger {
	case config.RetriggerEveryFrame:
		cs.MoveTo(target)
	case config.RetriggerOnWaypoint:
		if cs.waypointPending {
			cs.MoveTo(target)
		}
	default:
		if target.Sub(cam.Target).Len() > cam.Epsilon {
			cs.MoveTo(target)
		}
	}
}

// MoveTo 从当前位置开始补间到 target
func (cs *CameraSystem) MoveTo(target mgl64.Vec3) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	cam.Target = target
	if cam.Tween == nil || cam.Duration <= 0 {
		cam.Position = target
		cam.IsAnimating = false
		return
	}
	cam.Tween.Retarget(cam.Position, target, cam.Duration)
	cam.IsAnimating = cam.Tween.Active()
}

// StopAnimation 停止补间，立即放到目标位置
func (cs *CameraSystem) StopAnimation() {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	if cam.Tween != nil {
		cam.Tween.Stop()
	}
	cam.IsAnimating = false
	cam.Position = cam.Target
}

// IsAnimating 返回相机是否正在补间
func (cs *CameraSystem) IsAnimating() bool {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return false
	}
	return cam.IsAnimating
}

// OnWaypointReached 到达路标时调用，onWaypoint 模式下触发一次补间
func (cs *CameraSystem) OnWaypointReached(index int) {
	cs.waypointPending = true
}

// SetViewport 更新视口尺寸
func (cs *CameraSystem) SetViewport(width, height float64) {
	cs.camera.SetViewport(width, height)
}

// syncProjection 计算视差并更新透视相机
func (cs *CameraSystem) syncProjection() {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	cs.camera.LookAt(cam.Position, cam.LookAt)

	cam.ParallaxOffset = mgl64.Vec3{}
	if cam.Parallax > 0 && cs.mouse != nil {
		m := cs.mouse.Mouse()
		cam.ParallaxOffset = cs.camera.Right().Mul(m.X() * cam.Parallax).
			Add(cs.camera.Up().Mul(m.Y() * cam.Parallax))
		cs.camera.LookAt(cam.EyePosition(), cam.LookAt)
	}
}

func (cs *CameraSystem) positionOf(id ecs.EntityID) mgl64.Vec3 {
	if transform, ok := ecs.GetComponent[*components.TransformComponent](cs.entityManager, id); ok {
		return transform.Position
	}
	return mgl64.Vec3{}
}
