package motion

import "fmt"

// snapThreshold 累积值低于此阈值时直接归零，避免无限趋近
const snapThreshold = 1e-6

// ScrollParams 滚动积分参数
type ScrollParams struct {
	// Damping 每帧衰减系数 d ∈ (0,1)
	Damping float64
	// Scale 位移缩放 Δ = s·d / Scale
	Scale float64
	// MaxVelocity 单帧最大位移
	MaxVelocity float64
	// MaxAccumulated 累积值绝对值上限
	MaxAccumulated float64
}

// Validate 检查参数是否合法
func (p ScrollParams) Validate() error {
	if p.Damping <= 0 || p.Damping >= 1 {
		return fmt.Errorf("damping must be in (0,1), got %v", p.Damping)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("scale must be > 0, got %v", p.Scale)
	}
	if p.MaxVelocity <= 0 {
		return fmt.Errorf("maxVelocity must be > 0, got %v", p.MaxVelocity)
	}
	if p.MaxAccumulated <= 0 {
		return fmt.Errorf("maxAccumulated must be > 0, got %v", p.MaxAccumulated)
	}
	return nil
}

// ScrollIntegrator 把离散的滚轮/触摸输入转换为平滑衰减的每帧位移。
//
// 每次 Add 和 Step 之后 |Accumulated()| ≤ MaxAccumulated。
type ScrollIntegrator struct {
	params      ScrollParams
	accumulated float64
}

// NewScrollIntegrator 创建滚动积分器
//
// 参数:
//   - params: 积分参数，调用方负责先 Validate
//
// 返回:
//   - *ScrollIntegrator: 累积值为 0 的积分器
func NewScrollIntegrator(params ScrollParams) *ScrollIntegrator {
	return &ScrollIntegrator{params: params}
}

// Add 把原始输入量加入累积值，并限制在 ±MaxAccumulated
func (si *ScrollIntegrator) Add(raw float64) {
	si.accumulated = Clamp(si.accumulated+raw, -si.params.MaxAccumulated, si.params.MaxAccumulated)
}

// Step 推进一帧，返回本帧位移 Δ
//
// Δ = clamp(s·d/scale, -vmax, vmax)，随后 s ← s·d。
// 衰减不会改变符号，累积值低于阈值时归零。
func (si *ScrollIntegrator) Step() float64 {
	if si.accumulated == 0 {
		return 0
	}
	p := si.params
	delta := Clamp(si.accumulated*p.Damping/p.Scale, -p.MaxVelocity, p.MaxVelocity)

	si.accumulated = Clamp(si.accumulated*p.Damping, -p.MaxAccumulated, p.MaxAccumulated)
	if Abs(si.accumulated) < snapThreshold {
		si.accumulated = 0
	}
	return delta
}

// Accumulated 返回当前累积值
func (si *ScrollIntegrator) Accumulated() float64 {
	return si.accumulated
}

// Reset 清空累积值
func (si *ScrollIntegrator) Reset() {
	si.accumulated = 0
}

// Params 返回积分参数
func (si *ScrollIntegrator) Params() ScrollParams {
	return si.params
}

// SetParams 替换积分参数（热重载），累积值按新上限重新限制
func (si *ScrollIntegrator) SetParams(params ScrollParams) {
	si.params = params
	si.accumulated = Clamp(si.accumulated, -params.MaxAccumulated, params.MaxAccumulated)
}
