package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/motion"
)

// WheelPixelsPerNotch 一格滚轮对应的 deltaY（像素），与浏览器的 wheel 事件一致
const WheelPixelsPerNotch = 100

// InputSpeeds 输入灵敏度
type InputSpeeds struct {
	Wheel float64
	Touch float64
	Key   float64
}

// Controller 滚动故事的交互状态
//
// 所有输入事件和每帧更新都通过同一个 Controller 传递，
// 场景持有它的引用，系统只通过它读取滚动位移和鼠标位置。
//
// Gate 为 true 时（标题界面 / 开场动画期间）滚动输入被忽略，
// 开场动画结束后由 EntryAnimationSystem 调用 Release 打开。
type Controller struct {
	// Gate 输入闸门
	Gate bool

	scroll *motion.ScrollIntegrator
	speeds InputSpeeds

	// mouse 归一化鼠标位置，范围 [-1, 1]，y 向上为正
	mouse mgl64.Vec2

	touchActive bool
	// touchStartY 上一次的触摸位置
	touchStartY float64

	startRequested bool
	skipRequested  bool
}

// NewController 创建控制器，闸门初始为关闭状态（Gate = true）
func NewController(params motion.ScrollParams, speeds InputSpeeds) *Controller {
	return &Controller{
		Gate:   true,
		scroll: motion.NewScrollIntegrator(params),
		speeds: speeds,
	}
}

// OnWheel 处理滚轮事件
//
// deltaY > 0 表示向下滚动（旅行者向 End 方向前进）。
func (c *Controller) OnWheel(deltaY float64) {
	if c.Gate {
		return
	}
	c.scroll.Add(deltaY * c.speeds.Wheel)
}

// OnTouchStart 记录触摸起点
func (c *Controller) OnTouchStart(y float64) {
	c.touchActive = true
	c.touchStartY = y
}

// OnTouchMove 处理触摸拖动
//
// 手指向上滑动（y 变小）等价于向下滚动。位移量相对于上一次的触摸位置计算，
// 手指静止时不产生滚动。
func (c *Controller) OnTouchMove(y float64) {
	if !c.touchActive || c.Gate {
		return
	}
	c.scroll.Add((c.touchStartY - y) * c.speeds.Touch)
	c.touchStartY = y
}

// OnTouchEnd 结束触摸
func (c *Controller) OnTouchEnd() {
	c.touchActive = false
}

// OnMouseMove 记录鼠标位置
//
// 参数:
//   - x, y: 屏幕像素坐标
//   - width, height: 屏幕尺寸
func (c *Controller) OnMouseMove(x, y, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mouse = mgl64.Vec2{
		motion.Clamp(x/width*2-1, -1, 1),
		motion.Clamp(-(y/height*2 - 1), -1, 1),
	}
}

// OnKeyStep 方向键/翻页键，direction 为 +1（向下）或 -1（向上）
func (c *Controller) OnKeyStep(direction float64) {
	if c.Gate {
		return
	}
	c.scroll.Add(direction * c.speeds.Key)
}

// OnStart 标题界面的开始按钮
func (c *Controller) OnStart() {
	if !c.Gate {
		return
	}
	c.startRequested = true
}

// ConsumeStart 返回并清除开始请求
func (c *Controller) ConsumeStart() bool {
	requested := c.startRequested
	c.startRequested = false
	return requested
}

// OnSkip 跳过标题界面和开场动画（Esc）
func (c *Controller) OnSkip() {
	if !c.Gate {
		return
	}
	c.skipRequested = true
}

// ConsumeSkip 返回并清除跳过请求
func (c *Controller) ConsumeSkip() bool {
	requested := c.skipRequested
	c.skipRequested = false
	return requested
}

// Release 打开输入闸门
func (c *Controller) Release() {
	c.Gate = false
	c.startRequested = false
	c.skipRequested = false
}

// Lock 关闭输入闸门并清空累计滚动
func (c *Controller) Lock() {
	c.Gate = true
	c.scroll.Reset()
	c.touchActive = false
}

// StepScroll 推进一帧滚动积分，返回本帧旅行者位移
func (c *Controller) StepScroll() float64 {
	return c.scroll.Step()
}

// Accumulated 当前累计滚动量
func (c *Controller) Accumulated() float64 {
	return c.scroll.Accumulated()
}

// Mouse 归一化鼠标位置
func (c *Controller) Mouse() mgl64.Vec2 {
	return c.mouse
}

// Touching 是否正在触摸
func (c *Controller) Touching() bool {
	return c.touchActive
}
