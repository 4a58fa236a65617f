package components

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// TextComponent 世界空间中的公告板文字
type TextComponent struct {
	Text     string
	Position mgl64.Vec3
	// Size 世界单位的字高
	Size  float64
	Color color.NRGBA
	// Rotation 绕 Y 轴的角度，渲染时横向缩放 |cos(Rotation)|
	Rotation float64
	Opacity  float64
	Bold     bool
}
