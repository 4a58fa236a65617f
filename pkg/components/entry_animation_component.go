package components

import "github.com/go-gl/mathgl/mgl64"

// 开场动画状态
const (
	// EntryStateTitle 标题界面，等待开始
	EntryStateTitle = "title"
	// EntryStateEntering 相机从标题位置飞向跟随位置
	EntryStateEntering = "entering"
	// EntryStateExploring 开场结束，滚动输入生效
	EntryStateExploring = "exploring"
)

// EntryAnimationComponent 管理开场动画的状态机。
// 流程：标题界面 → 相机飞入 → 自由浏览。没有退出状态。
type EntryAnimationComponent struct {
	// State 当前状态："title" / "entering" / "exploring"
	State string

	// ElapsedTime 当前状态已用时间（秒）
	ElapsedTime float64

	// From / To 飞入动画的起点和终点
	From mgl64.Vec3
	To   mgl64.Vec3

	// IsSkipped 是否被跳过
	IsSkipped bool

	// IsCompleted 是否已完成
	IsCompleted bool
}
