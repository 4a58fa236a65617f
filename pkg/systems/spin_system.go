package systems

import (
	"math"

	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// SpinSystem 让带有 SpinComponent 的实体绕 Y 轴自转
type SpinSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpinSystem 创建自转系统
func NewSpinSystem(em *ecs.EntityManager) *SpinSystem {
	return &SpinSystem{entityManager: em}
}

// Update 按角速度推进旋转角，结果保持在 [0, 2π)
func (s *SpinSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith2[*components.SpinComponent, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		spin, _ := ecs.GetComponent[*components.SpinComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if spin.Rate == 0 {
			continue
		}
		transform.RotationY = math.Mod(transform.RotationY+spin.Rate*dt, 2*math.Pi)
		if transform.RotationY < 0 {
			transform.RotationY += 2 * math.Pi
		}
	}
}
