package systems

import (
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// ScrollSource 每帧提供一次滚动位移
type ScrollSource interface {
	StepScroll() float64
}

// TravelerSystem 把滚动位移施加到旅行者上。
//
// 每帧：Δ = source.StepScroll()，position ← clamp(position + Δ, range)。
// 旅行者只在移动轴上运动，另外两个坐标保持不变。
type TravelerSystem struct {
	entityManager  *ecs.EntityManager
	source         ScrollSource
	travelerEntity ecs.EntityID
}

// NewTravelerSystem 创建旅行者系统
func NewTravelerSystem(em *ecs.EntityManager, source ScrollSource, traveler ecs.EntityID) *TravelerSystem {
	return &TravelerSystem{
		entityManager:  em,
		source:         source,
		travelerEntity: traveler,
	}
}

// Update 推进一帧
func (ts *TravelerSystem) Update(dt float64) {
	if ts.source == nil {
		return
	}
	ts.ApplyDelta(ts.source.StepScroll())
}

// ApplyDelta 施加位移并夹取到区间内
//
// 返回:
//   - float64: 夹取后的轴向位置
func (ts *TravelerSystem) ApplyDelta(delta float64) float64 {
	tc, ok := ecs.GetComponent[*components.TravelerComponent](ts.entityManager, ts.travelerEntity)
	if !ok {
		return 0
	}
	tc.LastDelta = delta
	if delta != 0 {
		tc.Position = tc.Range.Clamp(tc.Position + delta)
	}
	ts.syncTransform(tc)
	return tc.Position
}

// SetProgress 直接把旅行者放到进度 p（0~1）处
func (ts *TravelerSystem) SetProgress(p float64) {
	tc, ok := ecs.GetComponent[*components.TravelerComponent](ts.entityManager, ts.travelerEntity)
	if !ok {
		return
	}
	tc.Position = tc.Range.At(p)
	ts.syncTransform(tc)
}

// Progress 返回旅行进度 [0,1]
func (ts *TravelerSystem) Progress() float64 {
	tc, ok := ecs.GetComponent[*components.TravelerComponent](ts.entityManager, ts.travelerEntity)
	if !ok {
		return 0
	}
	return tc.Progress()
}

func (ts *TravelerSystem) syncTransform(tc *components.TravelerComponent) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](ts.entityManager, ts.travelerEntity)
	if !ok {
		return
	}
	transform.Position = tc.Axis.Set(transform.Position, tc.Position)
}
