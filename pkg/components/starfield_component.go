package components

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// StarfieldComponent 星空点云
type StarfieldComponent struct {
	// Points 相对球心的坐标
	Points []mgl64.Vec3
	Center mgl64.Vec3
	Color  color.NRGBA
	// Size 星点像素大小
	Size float64
	// FollowCamera 为 true 时球心每帧移到相机位置
	FollowCamera bool
}
