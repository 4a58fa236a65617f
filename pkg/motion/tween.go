package motion

import "github.com/go-gl/mathgl/mgl64"

// Interpolate 在 duration 秒内从 start 缓动到 end，返回 elapsed 时刻的值
//
// duration ≤ 0 时直接返回 end。ease 为 nil 时按线性处理。
func Interpolate(start, end, duration, elapsed float64, ease EasingFunc) float64 {
	if duration <= 0 {
		return end
	}
	if ease == nil {
		ease = Linear
	}
	t := Clamp(elapsed/duration, 0, 1)
	return Lerp(start, end, ease(t))
}

// InterpolateVec3 对三维向量逐分量插值
func InterpolateVec3(start, end mgl64.Vec3, duration, elapsed float64, ease EasingFunc) mgl64.Vec3 {
	return mgl64.Vec3{
		Interpolate(start[0], end[0], duration, elapsed, ease),
		Interpolate(start[1], end[1], duration, elapsed, ease),
		Interpolate(start[2], end[2], duration, elapsed, ease),
	}
}

// Vec3Tween 三维补间
//
// 重新设定目标时从调用方给出的当前位置开始（后写者胜）。
type Vec3Tween struct {
	From     mgl64.Vec3
	To       mgl64.Vec3
	Duration float64
	Elapsed  float64
	Ease     EasingFunc
	active   bool
}

// NewVec3Tween 创建处于静止状态的补间
func NewVec3Tween(ease EasingFunc) *Vec3Tween {
	if ease == nil {
		ease = Linear
	}
	return &Vec3Tween{Ease: ease}
}

// Retarget 从 from 开始，用 duration 秒移动到 to
func (tw *Vec3Tween) Retarget(from, to mgl64.Vec3, duration float64) {
	tw.From = from
	tw.To = to
	tw.Duration = duration
	tw.Elapsed = 0
	tw.active = duration > 0
}

// Advance 推进 dt 秒并返回当前值
func (tw *Vec3Tween) Advance(dt float64) mgl64.Vec3 {
	if !tw.active {
		return tw.To
	}
	tw.Elapsed += dt
	if tw.Elapsed >= tw.Duration {
		tw.Elapsed = tw.Duration
		tw.active = false
		return tw.To
	}
	return tw.Value()
}

// Value 返回当前插值结果，不推进时间
func (tw *Vec3Tween) Value() mgl64.Vec3 {
	return InterpolateVec3(tw.From, tw.To, tw.Duration, tw.Elapsed, tw.Ease)
}

// Active 补间是否仍在进行
func (tw *Vec3Tween) Active() bool {
	return tw.active
}

// Progress 返回 [0,1] 的线性时间进度
func (tw *Vec3Tween) Progress() float64 {
	if tw.Duration <= 0 {
		return 1
	}
	return Clamp(tw.Elapsed/tw.Duration, 0, 1)
}

// Stop 结束补间，保持在目标位置
func (tw *Vec3Tween) Stop() {
	tw.Elapsed = tw.Duration
	tw.active = false
}
