package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// maxMeshVertices 索引类型为 uint16
const maxMeshVertices = math.MaxUint16 + 1

// SphereMesh UV 球面的顶点和三角形
type SphereMesh struct {
	Vertices []mgl64.Vec3
	Normals  []mgl64.Vec3
	// Indices 逆时针（从外侧看）为正面
	Indices []uint16
}

// BuildUVSphere 生成 UV 球
//
// 参数:
//   - radius: 半径
//   - widthSegments: 经度方向分段数（≥ 3）
//   - heightSegments: 纬度方向分段数（≥ 2）
//
// 顶点按行排列，每行 widthSegments+1 个（首尾重合以便贴图接缝），
// 两极的退化三角形被跳过。
func BuildUVSphere(radius float64, widthSegments, heightSegments int) (*SphereMesh, error) {
	if widthSegments < 3 || heightSegments < 2 {
		return nil, fmt.Errorf("sphere segments too small: %dx%d", widthSegments, heightSegments)
	}
	count := (widthSegments + 1) * (heightSegments + 1)
	if count > maxMeshVertices {
		return nil, fmt.Errorf("sphere has too many vertices: %d (max %d)", count, maxMeshVertices)
	}

	mesh := &SphereMesh{
		Vertices: make([]mgl64.Vec3, 0, count),
		Normals:  make([]mgl64.Vec3, 0, count),
	}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi

			n := mgl64.Vec3{
				-math.Cos(phi) * math.Sin(theta),
				math.Cos(theta),
				math.Sin(phi) * math.Sin(theta),
			}
			mesh.Normals = append(mesh.Normals, n)
			mesh.Vertices = append(mesh.Vertices, n.Mul(radius))
		}
	}

	row := widthSegments + 1
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint16(iy*row + ix + 1)
			b := uint16(iy*row + ix)
			c := uint16((iy+1)*row + ix)
			d := uint16((iy+1)*row + ix + 1)

			if iy != 0 {
				mesh.Indices = append(mesh.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				mesh.Indices = append(mesh.Indices, b, c, d)
			}
		}
	}

	return mesh, nil
}

// FaceNormal 三角形 (a, b, c) 的未归一化法线，逆时针为正面
func FaceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// RecomputeNormals 按面法线累加重新计算顶点法线
//
// 位置重合的顶点（接缝、两极）共享同一法线。
func RecomputeNormals(vertices []mgl64.Vec3, indices []uint16) []mgl64.Vec3 {
	byPosition := make(map[[3]float64]mgl64.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]
		n := FaceNormal(a, b, c)
		for _, v := range []mgl64.Vec3{a, b, c} {
			key := quantize(v)
			byPosition[key] = byPosition[key].Add(n)
		}
	}

	normals := make([]mgl64.Vec3, len(vertices))
	for i, v := range vertices {
		n := byPosition[quantize(v)]
		if n.Len() == 0 {
			n = v
		}
		normals[i] = n.Normalize()
	}
	return normals
}

func quantize(v mgl64.Vec3) [3]float64 {
	const q = 1e6
	return [3]float64{math.Round(v[0] * q), math.Round(v[1] * q), math.Round(v[2] * q)}
}

// blob 球面上的一个圆形区域
type blob struct {
	center mgl64.Vec3
	// cosRadius 角半径的余弦
	cosRadius float64
}

// randomBlobs 生成 n 个随机分布在单位球面上的区域
func randomBlobs(rng *rand.Rand, n int, minAngle, maxAngle float64) []blob {
	blobs := make([]blob, n)
	for i := range blobs {
		angle := minAngle + rng.Float64()*(maxAngle-minAngle)
		blobs[i] = blob{center: randomUnitVector(rng), cosRadius: math.Cos(angle)}
	}
	return blobs
}

// coverage 返回方向 n 被区域覆盖的程度 [0,1]，边缘平滑过渡
func coverage(blobs []blob, n mgl64.Vec3) float64 {
	best := 0.0
	for _, b := range blobs {
		d := n.Dot(b.center)
		if d <= b.cosRadius {
			continue
		}
		// 边缘 0.05 的过渡带
		edge := math.Min(1, (d-b.cosRadius)/0.05)
		best = math.Max(best, edge)
	}
	return best
}

// randomUnitVector 单位球面上的均匀分布
func randomUnitVector(rng *rand.Rand) mgl64.Vec3 {
	z := rng.Float64()*2 - 1
	phi := rng.Float64() * 2 * math.Pi
	r := math.Sqrt(1 - z*z)
	return mgl64.Vec3{r * math.Cos(phi), z, r * math.Sin(phi)}
}

// newRand 固定种子的随机数生成器
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// mixColor 按 t 在两个颜色之间线性插值
func mixColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = math.Max(0, math.Min(1, t))
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
