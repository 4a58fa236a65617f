package components

import "github.com/go-gl/mathgl/mgl64"

// TransformComponent 实体在世界坐标中的位置和绕 Y 轴的旋转
type TransformComponent struct {
	Position mgl64.Vec3
	// RotationY 绕 Y 轴旋转角（弧度）
	RotationY float64
}

// Apply 把模型空间的点变换到世界空间
func (t *TransformComponent) Apply(local mgl64.Vec3) mgl64.Vec3 {
	if t.RotationY == 0 {
		return local.Add(t.Position)
	}
	return mgl64.Rotate3DY(t.RotationY).Mul3x1(local).Add(t.Position)
}

// ApplyNormal 只旋转法线，不平移
func (t *TransformComponent) ApplyNormal(n mgl64.Vec3) mgl64.Vec3 {
	if t.RotationY == 0 {
		return n
	}
	return mgl64.Rotate3DY(t.RotationY).Mul3x1(n)
}
