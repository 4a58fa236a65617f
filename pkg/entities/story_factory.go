package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// StoryEntities 一个故事场景中的全部实体
//
// 系统通过这些 ID 直接访问对应实体，不按名称查找。
type StoryEntities struct {
	Earth     ecs.EntityID
	Clouds    ecs.EntityID
	Stars     ecs.EntityID
	Traveler  ecs.EntityID
	Camera    ecs.EntityID
	Entry     ecs.EntityID
	Waypoints []ecs.EntityID
}

// StoryOptions 场景创建选项
type StoryOptions struct {
	// Progress 旅行者初始进度 [0,1]（断点续看）
	Progress float64
	// SkipTitle 跳过标题界面和开场动画
	SkipTitle bool
}

// NewStoryEntities 根据故事配置创建全部实体
//
// 参数:
//   - em: 实体管理器（通常是空的）
//   - cfg: 已验证的故事配置
//   - opts: 创建选项
//
// 返回:
//   - *StoryEntities: 实体引用
//   - error: 任一实体创建失败
func NewStoryEntities(em *ecs.EntityManager, cfg *config.StoryConfig, opts StoryOptions) (*StoryEntities, error) {
	lookAtTarget, err := config.ParseLookAt(cfg.Camera.LookAt)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	earth, clouds, err := NewEarthEntity(em, cfg.Earth)
	if err != nil {
		return nil, err
	}

	traveler, err := NewTravelerEntity(em, cfg, opts.Progress)
	if err != nil {
		return nil, err
	}
	travelerTransform, _ := ecs.GetComponent[*components.TransformComponent](em, traveler)
	travelerPos := travelerTransform.Position

	lookAt := lookAtTarget.Resolve(cfg.Earth.Position.Mgl(), travelerPos)
	camera, err := NewCameraEntity(em, cfg, lookAt, travelerPos)
	if err != nil {
		return nil, err
	}
	cam, _ := ecs.GetComponent[*components.CameraComponent](em, camera)

	entities := &StoryEntities{
		Earth:     earth,
		Clouds:    clouds,
		Stars:     NewStarfieldEntity(em, cfg.Stars, cam.Position),
		Traveler:  traveler,
		Camera:    camera,
		Entry:     NewEntryAnimationEntity(em, cam.Position, cam.Target, opts.SkipTitle),
		Waypoints: NewWaypointEntities(em, cfg),
	}

	if opts.SkipTitle {
		cam.Position = cam.Target
		cam.Following = true
	}

	log.Printf("[StoryFactory] Story %s: %d waypoints, %d stars, traveler at %.2f",
		cfg.ID, len(entities.Waypoints), cfg.Stars.Count, travelerPos)
	return entities, nil
}
