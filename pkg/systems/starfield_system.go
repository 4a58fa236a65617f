package systems

import (
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// StarfieldSystem 让 FollowCamera 的星空球心跟随相机
//
// 星空半径小于相机移动距离时，固定的球心会让星星跑到远裁剪面外。
type StarfieldSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
}

// NewStarfieldSystem 创建星空系统
func NewStarfieldSystem(em *ecs.EntityManager, camera ecs.EntityID) *StarfieldSystem {
	return &StarfieldSystem{entityManager: em, cameraEntity: camera}
}

// Update 把星空球心移到相机位置
func (s *StarfieldSystem) Update(dt float64) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.cameraEntity)
	if !ok {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.StarfieldComponent](s.entityManager) {
		stars, _ := ecs.GetComponent[*components.StarfieldComponent](s.entityManager, id)
		if stars.FollowCamera {
			stars.Center = cam.EyePosition()
		}
	}
}
