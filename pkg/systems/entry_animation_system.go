package systems

import (
	"log"

	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/motion"
)

// EntryGate 开场动画读取开始/跳过请求，结束时打开输入闸门
type EntryGate interface {
	ConsumeStart() bool
	ConsumeSkip() bool
	Release()
}

// EntryAnimationSystem 管理标题界面和开场动画流程。
//
// 状态：title → entering → exploring。
// title 状态下等待开始按钮；entering 状态下相机从标题位置
// 缓动到第一个跟随位置；exploring 状态下相机交给 CameraSystem 跟随，
// 滚动输入生效。Esc 在前两个状态下直接跳到 exploring。
type EntryAnimationSystem struct {
	entityManager *ecs.EntityManager
	entryEntity   ecs.EntityID
	cameraEntity  ecs.EntityID
	gate          EntryGate

	duration float64
	ease     motion.EasingFunc
}

// NewEntryAnimationSystem 创建开场动画系统
//
// 实体创建时已跳过标题（SkipTitle）的场景，这里会立即打开输入闸门。
func NewEntryAnimationSystem(em *ecs.EntityManager, cfg *config.StoryConfig, entry, camera ecs.EntityID, gate EntryGate) *EntryAnimationSystem {
	ease, err := motion.ParseEasing(cfg.Entry.Easing)
	if err != nil {
		log.Printf("[EntryAnimationSystem] %v, using linear", err)
		ease = motion.Linear
	}

	eas := &EntryAnimationSystem{
		entityManager: em,
		entryEntity:   entry,
		cameraEntity:  camera,
		gate:          gate,
		duration:      cfg.Entry.Duration,
		ease:          ease,
	}

	if eas.IsCompleted() {
		log.Println("[EntryAnimationSystem] Title skipped, input released")
		gate.Release()
	}
	return eas
}

// Update 推进状态机
func (eas *EntryAnimationSystem) Update(dt float64) {
	anim, ok := ecs.GetComponent[*components.EntryAnimationComponent](eas.entityManager, eas.entryEntity)
	if !ok || anim.IsCompleted {
		return
	}

	if eas.gate.ConsumeSkip() {
		eas.Skip()
		return
	}

	anim.ElapsedTime += dt

	switch anim.State {
	case components.EntryStateTitle:
		eas.updateTitleState(anim)
	case components.EntryStateEntering:
		eas.updateEnteringState(anim)
	}
}

// updateTitleState 等待开始按钮
func (eas *EntryAnimationSystem) updateTitleState(anim *components.EntryAnimationComponent) {
	if !eas.gate.ConsumeStart() {
		return
	}

	anim.State = components.EntryStateEntering
	anim.ElapsedTime = 0
	log.Println("[EntryAnimationSystem] State: title → entering")

	if eas.duration <= 0 {
		eas.complete(anim)
	}
}

// updateEnteringState 相机飞入
func (eas *EntryAnimationSystem) updateEnteringState(anim *components.EntryAnimationComponent) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](eas.entityManager, eas.cameraEntity)
	if !ok {
		eas.complete(anim)
		return
	}

	cam.Position = motion.InterpolateVec3(anim.From, anim.To, eas.duration, anim.ElapsedTime, eas.ease)
	if anim.ElapsedTime >= eas.duration {
		eas.complete(anim)
	}
}

// Skip 跳过标题和开场动画
func (eas *EntryAnimationSystem) Skip() {
	anim, ok := ecs.GetComponent[*components.EntryAnimationComponent](eas.entityManager, eas.entryEntity)
	if !ok || anim.IsCompleted {
		return
	}

	log.Println("[EntryAnimationSystem] Skipping entry animation")
	anim.IsSkipped = true
	eas.complete(anim)
}

// complete 切换到浏览状态，相机开始跟随，打开输入闸门
func (eas *EntryAnimationSystem) complete(anim *components.EntryAnimationComponent) {
	anim.State = components.EntryStateExploring
	anim.ElapsedTime = 0
	anim.IsCompleted = true

	if cam, ok := ecs.GetComponent[*components.CameraComponent](eas.entityManager, eas.cameraEntity); ok {
		cam.Position = anim.To
		cam.Target = anim.To
		cam.Following = true
		if cam.Tween != nil {
			cam.Tween.Stop()
		}
		cam.IsAnimating = false
	}

	eas.gate.Release()
	log.Println("[EntryAnimationSystem] Entry completed, scrolling enabled")
}

// IsCompleted 返回开场动画是否已完成
func (eas *EntryAnimationSystem) IsCompleted() bool {
	anim, ok := ecs.GetComponent[*components.EntryAnimationComponent](eas.entityManager, eas.entryEntity)
	if !ok {
		return true
	}
	return anim.IsCompleted
}

// State 当前状态
func (eas *EntryAnimationSystem) State() string {
	anim, ok := ecs.GetComponent[*components.EntryAnimationComponent](eas.entityManager, eas.entryEntity)
	if !ok {
		return components.EntryStateExploring
	}
	return anim.State
}

// Progress 飞入动画进度 [0,1]，标题界面为 0，结束后为 1
func (eas *EntryAnimationSystem) Progress() float64 {
	anim, ok := ecs.GetComponent[*components.EntryAnimationComponent](eas.entityManager, eas.entryEntity)
	if !ok || anim.IsCompleted {
		return 1
	}
	if anim.State != components.EntryStateEntering || eas.duration <= 0 {
		return 0
	}
	return motion.Clamp(anim.ElapsedTime/eas.duration, 0, 1)
}
