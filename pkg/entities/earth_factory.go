package entities

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// cloudShellScale 云层半径相对地球半径的比例
const cloudShellScale = 1.02

// 极地冰盖的纬度阈值（法线 y 分量）
const iceCapThreshold = 0.92

var iceColor = color.NRGBA{R: 235, G: 242, B: 250, A: 255}

// NewEarthEntity 创建地球和云层两个实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 地球配置（已验证）
//
// 返回:
//   - earth: 地球实体 ID
//   - clouds: 云层实体 ID
//   - error: 网格参数无效时返回错误
func NewEarthEntity(em *ecs.EntityManager, cfg config.EarthConfig) (earth, clouds ecs.EntityID, err error) {
	sphere, err := BuildUVSphere(cfg.Radius, cfg.WidthSegments, cfg.HeightSegments)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build earth mesh: %w", err)
	}

	land := config.ParseColorOr(cfg.LandColor, color.NRGBA{R: 63, G: 125, B: 58, A: 255})
	ocean := config.ParseColorOr(cfg.OceanColor, color.NRGBA{R: 27, G: 79, B: 156, A: 255})

	rng := newRand(cfg.PatternSeed)
	continents := randomBlobs(rng, 9, 0.25, 0.6)

	colors := make([]color.NRGBA, len(sphere.Normals))
	for i, n := range sphere.Normals {
		c := mixColor(ocean, land, coverage(continents, n))
		if math.Abs(n.Y()) > iceCapThreshold {
			c = mixColor(c, iceColor, (math.Abs(n.Y())-iceCapThreshold)/(1-iceCapThreshold)*2)
		}
		colors[i] = c
	}

	earth = em.CreateEntity()
	ecs.AddComponent(em, earth, &components.TransformComponent{Position: cfg.Position.Mgl()})
	ecs.AddComponent(em, earth, &components.SpinComponent{Rate: cfg.Spin})
	ecs.AddComponent(em, earth, &components.MeshComponent{
		Vertices: sphere.Vertices,
		Normals:  sphere.Normals,
		Colors:   colors,
		Indices:  sphere.Indices,
		Material: components.MaterialSolid,
		Opacity:  1,
		Layer:    0,
	})

	clouds, err = newCloudEntity(em, cfg, rng)
	if err != nil {
		em.DestroyEntity(earth)
		em.RemoveMarkedEntities()
		return 0, 0, err
	}

	return earth, clouds, nil
}

// newCloudEntity 地球外的一层半透明云
func newCloudEntity(em *ecs.EntityManager, cfg config.EarthConfig, rng *rand.Rand) (ecs.EntityID, error) {
	shell, err := BuildUVSphere(cfg.Radius*cloudShellScale, cfg.WidthSegments, cfg.HeightSegments)
	if err != nil {
		return 0, fmt.Errorf("failed to build cloud mesh: %w", err)
	}

	cloudColor := config.ParseColorOr(cfg.CloudColor, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	bands := randomBlobs(rng, 14, 0.15, 0.45)

	colors := make([]color.NRGBA, len(shell.Normals))
	for i, n := range shell.Normals {
		c := cloudColor
		c.A = uint8(255 * coverage(bands, n))
		colors[i] = c
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Position: cfg.Position.Mgl()})
	ecs.AddComponent(em, id, &components.SpinComponent{Rate: cfg.CloudSpin})
	ecs.AddComponent(em, id, &components.MeshComponent{
		Vertices: shell.Vertices,
		Normals:  shell.Normals,
		Colors:   colors,
		Indices:  shell.Indices,
		Material: components.MaterialCloud,
		Opacity:  cfg.CloudOpacity,
		Layer:    1,
	})
	return id, nil
}
