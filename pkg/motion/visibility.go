package motion

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// DistanceMetric 可见度距离的计算方式
type DistanceMetric string

const (
	// DistanceEuclidean 三维欧氏距离
	DistanceEuclidean DistanceMetric = "euclidean"
	// DistanceAxis 只比较移动轴上的分量
	DistanceAxis DistanceMetric = "axis"
)

// ParseDistanceMetric 解析距离模式，空字符串为 euclidean
func ParseDistanceMetric(name string) (DistanceMetric, error) {
	switch DistanceMetric(name) {
	case "", DistanceEuclidean:
		return DistanceEuclidean, nil
	case DistanceAxis:
		return DistanceAxis, nil
	}
	return DistanceEuclidean, fmt.Errorf("unknown distance metric %q (expected euclidean or axis)", name)
}

// Distance 计算 from 与 to 之间的距离
func Distance(metric DistanceMetric, axis Axis, from, to mgl64.Vec3) float64 {
	if metric == DistanceAxis {
		return Abs(axis.Get(to) - axis.Get(from))
	}
	return to.Sub(from).Len()
}

// Opacity 按距离计算透明度：clamp(1 - distance/threshold, 0, 1)
//
// threshold ≤ 0 时视为配置错误，返回 0。
func Opacity(distance, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return Clamp(1-distance/threshold, 0, 1)
}
