package entities

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/motion"
)

// NewCameraEntity 创建相机实体
//
// 相机初始位于标题位置（cfg.Camera.Position），不跟随旅行者，
// 开场动画结束后才切换到跟随状态。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 故事配置
//   - lookAt: 初始注视点
//   - travelerPos: 旅行者初始位置，用于计算第一个跟随目标
func NewCameraEntity(em *ecs.EntityManager, cfg *config.StoryConfig, lookAt, travelerPos mgl64.Vec3) (ecs.EntityID, error) {
	follow := cfg.Camera.Follow
	ease, err := motion.ParseEasing(follow.Easing)
	if err != nil {
		return 0, fmt.Errorf("camera follow: %w", err)
	}

	offset := follow.Offset.Mgl()
	start := cfg.Camera.Position.Mgl()

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CameraComponent{
		Position:   start,
		LookAt:     lookAt,
		Target:     travelerPos.Add(offset),
		Tween:      motion.NewVec3Tween(ease),
		Mode:       follow.Mode,
		Retrigger:  follow.Retrigger,
		EasingType: follow.Easing,
		Duration:   follow.Duration,
		Epsilon:    follow.Epsilon,
		Offset:     offset,
		Parallax:   cfg.Camera.Parallax,
	})
	return id, nil
}

// NewEntryAnimationEntity 创建开场动画实体
//
// 参数:
//   - from: 标题界面的相机位置
//   - to: 开场结束时的相机位置（第一个跟随目标）
//   - skipTitle: 为 true 时直接进入浏览状态
func NewEntryAnimationEntity(em *ecs.EntityManager, from, to mgl64.Vec3, skipTitle bool) ecs.EntityID {
	anim := &components.EntryAnimationComponent{
		State: components.EntryStateTitle,
		From:  from,
		To:    to,
	}
	if skipTitle {
		anim.State = components.EntryStateExploring
		anim.IsSkipped = true
		anim.IsCompleted = true
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, anim)
	return id
}
