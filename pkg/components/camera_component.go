package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/motion"
)

// CameraComponent 管理相机位置、注视点和跟随动画状态。
type CameraComponent struct {
	// Position 当前相机位置（不含视差偏移）
	Position mgl64.Vec3

	// LookAt 当前注视点
	LookAt mgl64.Vec3

	// Target 最近一次设定的目标位置（旅行者 + 偏移）
	Target mgl64.Vec3

	// Tween 补间状态，Mode 为 "tween" 时使用
	Tween *motion.Vec3Tween

	// IsAnimating 是否正在补间
	IsAnimating bool

	// Mode "direct" 或 "tween"
	Mode string

	// Retrigger 补间重新触发策略：
	// - "everyFrame": 每帧都从当前位置重新开始补间
	// - "onChange": 目标移动超过 Epsilon 时重新开始
	// - "onWaypoint": 到达新路标时重新开始
	Retrigger string

	// EasingType 缓动名称
	EasingType string

	// Duration 补间时长（秒）
	Duration float64

	Epsilon float64

	// Offset 相对旅行者的偏移
	Offset mgl64.Vec3

	// Parallax 鼠标视差强度
	Parallax float64

	// ParallaxOffset 当前帧的视差偏移
	ParallaxOffset mgl64.Vec3

	// Following 为 false 时相机保持在外部设定的位置（标题/开场动画）
	Following bool
}

// EyePosition 渲染用的相机位置（包含视差）
func (c *CameraComponent) EyePosition() mgl64.Vec3 {
	return c.Position.Add(c.ParallaxOffset)
}
