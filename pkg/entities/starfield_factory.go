package entities

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// NewStarfieldEntity 创建星空实体
//
// 星点均匀分布在半径为 cfg.Radius 的球面上，同一个种子总是生成相同的星空。
//
// 参数:
//   - em: 实体管理器
//   - cfg: 星空配置
//   - center: 初始球心（FollowCamera 时每帧会被移到相机位置）
func NewStarfieldEntity(em *ecs.EntityManager, cfg config.StarsConfig, center mgl64.Vec3) ecs.EntityID {
	rng := newRand(cfg.Seed)
	points := make([]mgl64.Vec3, cfg.Count)
	for i := range points {
		points[i] = randomUnitVector(rng).Mul(cfg.Radius)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.StarfieldComponent{
		Points:       points,
		Center:       center,
		Color:        config.ParseColorOr(cfg.Color, color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Size:         cfg.Size,
		FollowCamera: cfg.FollowCamera,
	})
	return id
}
