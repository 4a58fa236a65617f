// Package motion 提供滚动驱动场景所需的纯数值工具：
// 阻尼滚动积分器、轴向范围、缓动函数、补间和可见度计算。
//
// 本包不依赖 ebiten，可以在无窗口环境（测试、终端查看器、回放工具）中使用。
package motion

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Lerp 线性插值
func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// Clamp 将 n 限制在 [minN, maxN] 范围内
func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	n = min(n, maxN)
	n = max(n, minN)

	return n
}

// Abs 绝对值
func Abs[N constraints.Integer | constraints.Float](n N) N {
	if n < 0 {
		return -n
	}
	return n
}

// NearlyEqual 判断两个浮点数在 epsilon 内是否相等
func NearlyEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
