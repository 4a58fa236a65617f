package motion

import (
	"fmt"
	"strconv"
	"strings"
)

// EasingFunc 把线性进度 t ∈ [0,1] 映射为缓动后的进度
type EasingFunc func(t float64) float64

// 缓动名称
const (
	EaseLinear         = "linear"
	EaseIn             = "easeIn"
	EaseOut            = "easeOut"
	EaseInOut          = "easeInOut"
	EaseInOutCubic     = "easeInOutCubic"
	easeBezierFuncName = "bezier"
)

// Linear 线性
func Linear(t float64) float64 {
	return t
}

// EaseInQuad 二次加速
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 减速缓动函数
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutQuad 二次缓动函数（先加速后减速）
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseInOutCubicFunc 三次缓动（先加速后减速）
func EaseInOutCubicFunc(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}

// BezierCurve 一维三次贝塞尔曲线
func BezierCurve(p0, p1, p2, p3, t float64) float64 {
	it := 1 - t
	return it*it*it*p0 + 3*it*it*t*p1 + 3*it*t*t*p2 + t*t*t*p3
}

// BezierCurveNewton 用牛顿迭代求曲线上取值为 n 的参数 t，仅支持 [0,1]
func BezierCurveNewton(p0, p1, p2, p3, n float64) float64 {
	n = Clamp(n, 0, 1)
	t := n
	for range 8 {
		it := 1 - t
		f := BezierCurve(p0, p1, p2, p3, t) - n
		fd := 3*it*it*(p1-p0) + 6*it*t*(p2-p1) + 3*t*t*(p3-p2)
		if Abs(fd) < 0.0001 {
			break
		}
		if Abs(f) < 0.0001 {
			break
		}
		t = t - f/fd
		t = Clamp(t, 0, 1)
	}

	return Clamp(t, 0, 1)
}

// CubicBezier 返回 CSS cubic-bezier(x1,y1,x2,y2) 形式的缓动函数
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	return func(t float64) float64 {
		t = Clamp(t, 0, 1)
		if t == 0 || t == 1 {
			return t
		}
		u := BezierCurveNewton(0, x1, x2, 1, t)
		return BezierCurve(0, y1, y2, 1, u)
	}
}

// ParseEasing 按名称解析缓动函数
//
// 支持 "linear", "easeIn", "easeOut", "easeInOut", "easeInOutCubic"
// 以及 "bezier(x1,y1,x2,y2)"。空字符串视为 "linear"。
func ParseEasing(name string) (EasingFunc, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "", EaseLinear:
		return Linear, nil
	case EaseIn:
		return EaseInQuad, nil
	case EaseOut:
		return EaseOutQuad, nil
	case EaseInOut:
		return EaseInOutQuad, nil
	case EaseInOutCubic:
		return EaseInOutCubicFunc, nil
	}

	if strings.HasPrefix(name, easeBezierFuncName+"(") && strings.HasSuffix(name, ")") {
		args := strings.Split(name[len(easeBezierFuncName)+1:len(name)-1], ",")
		if len(args) != 4 {
			return nil, fmt.Errorf("bezier easing needs 4 arguments, got %d", len(args))
		}
		var p [4]float64
		for i, a := range args {
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid bezier argument %q: %w", a, err)
			}
			p[i] = v
		}
		if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
			return nil, fmt.Errorf("bezier x control points must be in [0,1], got %v and %v", p[0], p[2])
		}
		return CubicBezier(p[0], p[1], p[2], p[3]), nil
	}

	return nil, fmt.Errorf("unknown easing %q", name)
}
