package scenes

import (
	"fmt"

	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// debugLines 调试叠加层的文字（F1 切换）
func (s *StoryScene) debugLines() []string {
	lines := []string{
		fmt.Sprintf("story    %s", s.storyID),
		fmt.Sprintf("tps/fps  %.0f / %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("entry    %s  gate=%v", s.entrySystem.State(), s.controller.Gate),
		fmt.Sprintf("scroll   acc=%.2f", s.controller.Accumulated()),
	}

	if tc, ok := ecs.GetComponent[*components.TravelerComponent](s.entityManager, s.story.Traveler); ok {
		lines = append(lines, fmt.Sprintf("traveler %s=%.2f  Δ=%.3f  p=%.3f",
			tc.Axis, tc.Position, tc.LastDelta, tc.Progress()))
	}

	if cam, ok := ecs.GetComponent[*components.CameraComponent](s.entityManager, s.story.Camera); ok {
		p := cam.EyePosition()
		lines = append(lines, fmt.Sprintf("camera   (%.1f, %.1f, %.1f) %s/%s anim=%v",
			p.X(), p.Y(), p.Z(), cam.Mode, cam.Retrigger, cam.IsAnimating))
	}

	if idx, ok := s.visibilitySystem.Current(); ok {
		lines = append(lines, fmt.Sprintf("waypoint #%d  opacity=%.2f  reached=%d",
			idx, s.visibilitySystem.Opacity(idx), s.reachedCount))
	} else {
		lines = append(lines, fmt.Sprintf("waypoint -  reached=%d", s.reachedCount))
	}

	stats := s.renderSystem.Stats()
	lines = append(lines, fmt.Sprintf("render   tris=%d culled=%d text=%d stars=%d calls=%d",
		stats.Triangles, stats.Culled, stats.Texts, stats.Stars, stats.DrawCalls))
	return lines
}
