package components

import "github.com/gonewx/scrollstory/pkg/motion"

// TravelerComponent 沿单轴移动的旅行者
//
// 位置只在 Axis 方向变化，另外两个分量来自 TransformComponent 的初始值。
type TravelerComponent struct {
	Axis  motion.Axis
	Range motion.Range

	// Position 轴向坐标，始终位于 Range 内
	Position float64

	// LastDelta 最近一帧施加的位移（调试显示用）
	LastDelta float64
}

// Progress 返回 0~1 的旅行进度
func (tc *TravelerComponent) Progress() float64 {
	return tc.Range.Progress(tc.Position)
}
