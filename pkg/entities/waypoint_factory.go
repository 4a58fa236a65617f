package entities

import (
	"image/color"

	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
)

// NewWaypointEntities 为每个路标创建路标实体和两个文字实体
//
// 文字初始透明度为 0，由可见度系统在第一帧更新。
//
// 返回:
//   - []ecs.EntityID: 按配置顺序排列的路标实体
func NewWaypointEntities(em *ecs.EntityManager, cfg *config.StoryConfig) []ecs.EntityID {
	labelColor := config.ParseColorOr(cfg.Text.Label.Color, color.NRGBA{R: 255, G: 165, A: 255})
	infoColor := config.ParseColorOr(cfg.Text.Info.Color, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	labelOffset := cfg.Text.Label.Offset.Mgl()

	ids := make([]ecs.EntityID, 0, len(cfg.Waypoints))
	for i, wp := range cfg.Waypoints {
		pos := wp.Position.Mgl()

		label := em.CreateEntity()
		ecs.AddComponent(em, label, &components.TextComponent{
			Text:     wp.Label,
			Position: pos.Add(labelOffset),
			Size:     cfg.Text.Label.Size,
			Color:    labelColor,
			Rotation: wp.Rotation,
			Bold:     true,
		})

		info := em.CreateEntity()
		ecs.AddComponent(em, info, &components.TextComponent{
			Text:     wp.Info,
			Position: pos,
			Size:     cfg.Text.Info.Size,
			Color:    infoColor,
			Rotation: wp.Rotation,
		})

		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.TransformComponent{Position: pos, RotationY: wp.Rotation})
		ecs.AddComponent(em, id, &components.WaypointComponent{
			Index:       i,
			Label:       wp.Label,
			Info:        wp.Info,
			Position:    pos,
			Rotation:    wp.Rotation,
			LabelEntity: label,
			InfoEntity:  info,
		})
		ids = append(ids, id)
	}
	return ids
}
