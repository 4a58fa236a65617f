package components

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// MaterialKind 网格着色方式
type MaterialKind int

const (
	// MaterialSolid 使用顶点颜色的漫反射
	MaterialSolid MaterialKind = iota
	// MaterialCloud 半透明云层，背光面更暗
	MaterialCloud
)

// MeshComponent 模型空间的三角形网格
type MeshComponent struct {
	Vertices []mgl64.Vec3
	Normals  []mgl64.Vec3
	Colors   []color.NRGBA
	// Indices 每 3 个为一个三角形，逆时针为正面
	Indices []uint16

	Material MaterialKind
	Opacity  float64

	// Layer 同一深度时的绘制顺序（云层画在地球之后）
	Layer int
}

// TriangleCount 三角形数量
func (m *MeshComponent) TriangleCount() int {
	return len(m.Indices) / 3
}
