package motion

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis 世界坐标轴
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis 解析 "x" / "y" / "z"
func ParseAxis(name string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z", "":
		return AxisZ, nil
	}
	return AxisZ, fmt.Errorf("unknown axis %q (expected x, y or z)", name)
}

// String 实现 fmt.Stringer
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "z"
	}
}

// Get 取向量在该轴上的分量
func (a Axis) Get(v mgl64.Vec3) float64 {
	return v[int(a)]
}

// Set 返回该轴分量被替换后的向量
func (a Axis) Set(v mgl64.Vec3, value float64) mgl64.Vec3 {
	v[int(a)] = value
	return v
}

// Range 旅行者在移动轴上的允许区间。
//
// Start 与 End 可以倒序书写（Start > End），夹取始终使用 [min, max]。
type Range struct {
	Start float64
	End   float64
}

// Validate 拒绝零长度区间
func (r Range) Validate() error {
	if r.Start == r.End {
		return fmt.Errorf("traveler range has zero length (start = end = %v)", r.Start)
	}
	return nil
}

// Min 区间下界
func (r Range) Min() float64 {
	return min(r.Start, r.End)
}

// Max 区间上界
func (r Range) Max() float64 {
	return max(r.Start, r.End)
}

// Clamp 把位置限制在区间内
func (r Range) Clamp(v float64) float64 {
	return Clamp(v, r.Min(), r.Max())
}

// Progress 返回从 Start 到 End 的归一化进度 [0,1]
func (r Range) Progress(v float64) float64 {
	if r.Start == r.End {
		return 0
	}
	return Clamp((v-r.Start)/(r.End-r.Start), 0, 1)
}

// At 进度的逆运算，返回进度 p 对应的位置
func (r Range) At(p float64) float64 {
	return Lerp(r.Start, r.End, Clamp(p, 0, 1))
}
