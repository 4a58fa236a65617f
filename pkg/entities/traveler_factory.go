package entities

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// 旅行者网格分段数
const (
	travelerWidthSegments  = 14
	travelerHeightSegments = 10
)

// NewTravelerEntity 创建旅行者（小行星）
//
// 参数:
//   - em: 实体管理器
//   - cfg: 故事配置
//   - progress: 初始进度 [0,1]，0 表示位于 Start
//
// 返回:
//   - ecs.EntityID: 旅行者实体 ID
//   - error: 网格无法生成时返回错误
func NewTravelerEntity(em *ecs.EntityManager, cfg *config.StoryConfig, progress float64) (ecs.EntityID, error) {
	tc := cfg.Traveler
	sphere, err := BuildUVSphere(tc.Radius, travelerWidthSegments, travelerHeightSegments)
	if err != nil {
		return 0, fmt.Errorf("failed to build traveler mesh: %w", err)
	}

	base := config.ParseColorOr(tc.Color, color.NRGBA{R: 138, G: 127, B: 114, A: 255})
	shadow := mixColor(base, color.NRGBA{A: 255}, 0.45)

	// 按方向计算起伏，接缝和两极上重合的顶点得到相同的位移
	colors := make([]color.NRGBA, len(sphere.Vertices))
	for i, n := range sphere.Normals {
		bump := surfaceBump(n)
		sphere.Vertices[i] = n.Mul(tc.Radius * (1 + tc.Roughness*bump))
		colors[i] = mixColor(shadow, base, 0.5+0.5*bump)
	}
	normals := RecomputeNormals(sphere.Vertices, sphere.Indices)

	axis := cfg.TravelerAxis()
	travelRange := cfg.TravelerRange()
	pos := travelRange.At(progress)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: axis.Set(tc.Offset.Mgl(), pos),
	})
	ecs.AddComponent(em, id, &components.SpinComponent{Rate: tc.Spin})
	ecs.AddComponent(em, id, &components.TravelerComponent{
		Axis:     axis,
		Range:    travelRange,
		Position: pos,
	})
	ecs.AddComponent(em, id, &components.MeshComponent{
		Vertices: sphere.Vertices,
		Normals:  normals,
		Colors:   colors,
		Indices:  sphere.Indices,
		Material: components.MaterialSolid,
		Opacity:  1,
	})
	return id, nil
}

// surfaceBump 单位方向上的平滑起伏，范围约 [-1, 1]
func surfaceBump(n mgl64.Vec3) float64 {
	v := math.Sin(3.1*n[0]+1.3) * math.Cos(2.7*n[1]-0.4)
	v += 0.6 * math.Sin(5.3*n[2]+2.1*n[0])
	v += 0.3 * math.Cos(7.9*n[1]+4.2*n[2])
	return v / 1.9
}
