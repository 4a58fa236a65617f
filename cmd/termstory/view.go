package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/projection"
)

const infoWrapWidth = 36

// toCell 把像素坐标映射到终端字符格
func toCell(sx, sy, width, height float64, cols, rows int) (int, int, bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	x := int(sx / width * float64(cols))
	y := int(sy / height * float64(rows))
	return x, y, x >= 0 && x < cols && y >= 0 && y < rows
}

// fade 按透明度把颜色混向黑色背景
func fade(c color.NRGBA, opacity float64) tcell.Color {
	opacity = max(0, min(1, opacity))
	return tcell.NewRGBColor(
		int32(float64(c.R)*opacity+0.5),
		int32(float64(c.G)*opacity+0.5),
		int32(float64(c.B)*opacity+0.5),
	)
}

// progressBar 文本进度条，width 包含两侧方括号
func progressBar(width int, p float64) string {
	inner := width - 2
	if inner <= 0 {
		return ""
	}
	filled := int(max(0, min(1, p))*float64(inner) + 0.5)
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", inner-filled) + "]"
}

// wrap 按空格折行，单词比宽度长时单独成行
func wrap(s string, width int) []string {
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(w) > width {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

func toTcell(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (v *viewer) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *viewer) putCentered(y int, s string, style tcell.Style) {
	cols, _ := v.screen.Size()
	v.put((cols-len([]rune(s)))/2, y, s, style)
}

// draw 绘制一帧：星空 → 地球 → 旅行者 → 路标 → 状态栏
func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	cam := v.scene.Projection()
	cfg := v.scene.Config()
	snap := v.scene.Snapshot()

	project := func(p mgl64.Vec3) (int, int, float64, bool) {
		sx, sy, depth, ok := cam.Project(p)
		if !ok {
			return 0, 0, 0, false
		}
		x, y, in := toCell(sx, sy, cam.Width, cam.Height, cols, rows)
		return x, y, depth, in
	}

	starStyle := tcell.StyleDefault.Foreground(toTcell(config.ParseColorOr(cfg.Stars.Color, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))).Dim(true)
	for _, p := range v.scene.StarPositions() {
		if x, y, _, ok := project(p); ok {
			v.screen.SetContent(x, y, '·', nil, starStyle)
		}
	}

	v.drawEarth(cam, cfg, cols, rows)

	if x, y, _, ok := project(snap.Traveler); ok {
		c := config.ParseColorOr(cfg.Traveler.Color, color.NRGBA{R: 255, G: 165, A: 255})
		v.screen.SetContent(x, y, '◆', nil, tcell.StyleDefault.Foreground(toTcell(c)).Bold(true))
	}

	labelColor := config.ParseColorOr(cfg.Text.Label.Color, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	infoColor := config.ParseColorOr(cfg.Text.Info.Color, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for _, wp := range snap.Waypoints {
		if wp.Opacity <= 0 {
			continue
		}
		if x, y, _, ok := project(wp.Position.Add(cfg.Text.Label.Offset.Mgl())); ok {
			style := tcell.StyleDefault.Foreground(fade(labelColor, wp.Opacity)).Bold(true)
			v.put(x-len([]rune(wp.Label))/2, y, wp.Label, style)
		}
		if x, y, _, ok := project(wp.Position); ok {
			style := tcell.StyleDefault.Foreground(fade(infoColor, wp.Opacity))
			for i, line := range wrap(wp.Info, infoWrapWidth) {
				v.put(x-len([]rune(line))/2, y+1+i, line, style)
			}
		}
	}

	v.drawStatus(snap.EntryState, snap.Progress, cfg, cols, rows)
	v.screen.Show()
}

// drawEarth 把地球画成实心圆
func (v *viewer) drawEarth(cam *projection.Camera, cfg *config.StoryConfig, cols, rows int) {
	sx, sy, depth, ok := cam.Project(cfg.Earth.Position.Mgl())
	if !ok {
		return
	}
	r := cfg.Earth.Radius * cam.ScaleAt(depth)
	rx := r / cam.Width * float64(cols)
	ry := r / cam.Height * float64(rows)
	if rx < 0.5 || ry < 0.5 {
		return
	}
	cx := sx / cam.Width * float64(cols)
	cy := sy / cam.Height * float64(rows)

	ocean := config.ParseColorOr(cfg.Earth.OceanColor, color.NRGBA{B: 200, A: 255})
	style := tcell.StyleDefault.Foreground(toTcell(ocean))
	for y := max(0, int(cy-ry)); y <= min(rows-1, int(cy+ry)); y++ {
		for x := max(0, int(cx-rx)); x <= min(cols-1, int(cx+rx)); x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				v.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}
}

func (v *viewer) drawStatus(entryState string, progress float64, cfg *config.StoryConfig, cols, rows int) {
	switch entryState {
	case components.EntryStateTitle:
		bold := tcell.StyleDefault.Bold(true)
		v.putCentered(rows/2-2, cfg.Title, bold)
		v.putCentered(rows/2, cfg.Subtitle, tcell.StyleDefault)
		v.putCentered(rows/2+2, "[ Enter ] Start    [ Esc ] Skip", tcell.StyleDefault.Reverse(true))
	case components.EntryStateExploring:
		status := fmt.Sprintf(" %s %3.0f%%  ↑↓ scroll  n next  q quit", cfg.ID, progress*100)
		bar := progressBar(cols-len([]rune(status))-1, progress)
		v.put(0, rows-1, bar+status, tcell.StyleDefault.Dim(true))
	}
}
