// Package projection 提供透视相机和世界坐标到屏幕坐标的投影。
//
// 渲染系统使用 ebiten 的二维三角形管线绘制三维场景，
// 顶点先由本包投影到屏幕，再按深度排序绘制。
package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp 世界坐标系的上方向
var WorldUp = mgl64.Vec3{0, 1, 0}

// Camera 透视相机
type Camera struct {
	// FovY 垂直视场角（度）
	FovY float64
	Near float64
	Far  float64

	// Width / Height 视口尺寸（像素）
	Width  float64
	Height float64

	Position mgl64.Vec3
	Target   mgl64.Vec3

	view     mgl64.Mat4
	proj     mgl64.Mat4
	viewProj mgl64.Mat4
}

// NewCamera 创建透视相机
//
// 参数:
//   - fovY: 垂直视场角（度）
//   - near, far: 近/远裁剪面
//   - width, height: 视口尺寸（像素）
func NewCamera(fovY, near, far, width, height float64) *Camera {
	c := &Camera{
		FovY:   fovY,
		Near:   near,
		Far:    far,
		Width:  width,
		Height: height,
		Target: mgl64.Vec3{0, 0, -1},
	}
	c.updateProjection()
	c.updateView()
	return c
}

// SetViewport 更新视口尺寸，同时更新宽高比
func (c *Camera) SetViewport(width, height float64) {
	if width == c.Width && height == c.Height {
		return
	}
	c.Width = width
	c.Height = height
	c.updateProjection()
}

// LookAt 设置相机位置和注视点
func (c *Camera) LookAt(eye, target mgl64.Vec3) {
	c.Position = eye
	c.Target = target
	c.updateView()
}

// Aspect 宽高比
func (c *Camera) Aspect() float64 {
	if c.Height <= 0 {
		return 1
	}
	return c.Width / c.Height
}

func (c *Camera) updateProjection() {
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
	c.viewProj = c.proj.Mul4(c.view)
}

func (c *Camera) updateView() {
	// 视线与上方向平行时 LookAt 退化，换用 Z 轴作为上方向
	up := WorldUp
	dir := c.Target.Sub(c.Position)
	if dir.Len() > 0 && math.Abs(dir.Normalize().Dot(WorldUp)) > 0.999 {
		up = mgl64.Vec3{0, 0, -1}
	}
	c.view = mgl64.LookAtV(c.Position, c.Target, up)
	c.viewProj = c.proj.Mul4(c.view)
}

// View 视图矩阵
func (c *Camera) View() mgl64.Mat4 {
	return c.view
}

// ViewProjection 投影矩阵 × 视图矩阵
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.viewProj
}

// Forward 相机朝向（单位向量）
func (c *Camera) Forward() mgl64.Vec3 {
	dir := c.Target.Sub(c.Position)
	if dir.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return dir.Normalize()
}

// Right 屏幕右方向在世界坐标中的表示
func (c *Camera) Right() mgl64.Vec3 {
	return mgl64.Vec3{c.view.At(0, 0), c.view.At(0, 1), c.view.At(0, 2)}
}

// Up 屏幕上方向在世界坐标中的表示
func (c *Camera) Up() mgl64.Vec3 {
	return mgl64.Vec3{c.view.At(1, 0), c.view.At(1, 1), c.view.At(1, 2)}
}

// Project 把世界坐标投影到屏幕
//
// 返回:
//   - sx, sy: 屏幕坐标（像素，左上角为原点）
//   - depth: 视空间深度（到相机平面的距离）
//   - ok: 点位于近/远裁剪面之间时为 true
func (c *Camera) Project(world mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	clip := c.viewProj.Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, w, false
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	ndcZ := clip.Z() / w

	sx = (ndcX + 1) * 0.5 * c.Width
	sy = (1 - ndcY) * 0.5 * c.Height
	ok = ndcZ >= -1 && ndcZ <= 1
	return sx, sy, w, ok
}

// ViewDepth 返回点的视空间深度，不做裁剪
func (c *Camera) ViewDepth(world mgl64.Vec3) float64 {
	v := c.view.Mul4x1(world.Vec4(1))
	return -v.Z()
}

// ScaleAt 返回指定深度处每个世界单位对应的像素数
func (c *Camera) ScaleAt(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.Height / (2 * depth * math.Tan(mgl64.DegToRad(c.FovY)/2))
}
