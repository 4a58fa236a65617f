package systems

import (
	"image/color"
	"log"
	"strings"

	"github.com/gonewx/scrollstory/pkg/components"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	scrollbarTrackColor  = color.RGBA{255, 255, 255, 40}
	scrollbarHandleColor = color.RGBA{255, 255, 255, 200}
	titleColor           = color.RGBA{255, 255, 255, 255}
	subtitleColor        = color.RGBA{200, 210, 230, 255}
	startButtonColor     = color.RGBA{255, 165, 0, 230}
	startButtonTextColor = color.RGBA{0, 0, 0, 255}
	debugTextColor       = color.RGBA{120, 255, 120, 255}
	debugPanelColor      = color.RGBA{0, 0, 0, 150}
)

const debugFontSize = 14.0

// HUDState 屏幕空间叠加层需要的数据，由场景每帧填写
type HUDState struct {
	Title    string
	Subtitle string

	// EntryState 开场动画状态，EntryProgress 为飞入进度 [0,1]
	EntryState    string
	EntryProgress float64

	// Progress 旅行者进度 [0,1]
	Progress      float64
	ShowScrollbar bool

	Debug      bool
	DebugLines []string
}

// HUDRenderSystem 绘制滚动条、标题界面和调试信息
type HUDRenderSystem struct {
	resourceManager *game.ResourceManager
}

// NewHUDRenderSystem 创建叠加层渲染系统
func NewHUDRenderSystem(rm *game.ResourceManager) *HUDRenderSystem {
	return &HUDRenderSystem{resourceManager: rm}
}

// Draw 绘制叠加层
func (s *HUDRenderSystem) Draw(screen *ebiten.Image, state HUDState) {
	bounds := screen.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	if alpha := titleAlpha(state); alpha > 0 {
		s.drawTitle(screen, state, w, h, alpha)
	}
	if scrollbarVisible(state) {
		s.drawScrollbar(screen, w, h, state.Progress)
	}
	if state.Debug && len(state.DebugLines) > 0 {
		s.drawDebug(screen, state.DebugLines)
	}
}

// drawScrollbar 右侧进度条
func (s *HUDRenderSystem) drawScrollbar(screen *ebiten.Image, w, h, progress float64) {
	x, y, tw, th := config.ScrollbarTrack(w, h)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(tw), float32(th), scrollbarTrackColor, true)

	hx, hy, hw, hh := scrollbarHandleRect(w, h, progress)
	vector.DrawFilledRect(screen, float32(hx), float32(hy), float32(hw), float32(hh), scrollbarHandleColor, true)
}

// drawTitle 标题、副标题和开始按钮
func (s *HUDRenderSystem) drawTitle(screen *ebiten.Image, state HUDState, w, h, alpha float64) {
	s.drawCentered(screen, state.Title, game.FontBold, config.TitleFontSize, w/2, h*config.TitleY, titleColor, alpha)
	s.drawCentered(screen, state.Subtitle, game.FontRegular, config.SubtitleFontSize, w/2, h*config.SubtitleY, subtitleColor, alpha)

	// 开始按钮只在标题状态显示
	if state.EntryState != components.EntryStateTitle {
		return
	}
	x0, y0, x1, y1 := config.StartButtonRect(w, h)
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), startButtonColor, true)
	s.drawCentered(screen, "Start", game.FontBold, config.StartButtonFont, (x0+x1)/2, (y0+y1)/2, startButtonTextColor, alpha)
}

// drawDebug 左上角调试信息
func (s *HUDRenderSystem) drawDebug(screen *ebiten.Image, lines []string) {
	face, err := s.resourceManager.LoadFont(game.FontMono, debugFontSize)
	if err != nil {
		log.Printf("[HUDRenderSystem] Failed to load debug font: %v", err)
		return
	}

	lineHeight := debugFontSize * 1.3
	panelH := lineHeight*float64(len(lines)) + 12
	vector.DrawFilledRect(screen, 8, 8, 360, float32(panelH), debugPanelColor, false)

	op := &text.DrawOptions{}
	op.LayoutOptions.LineSpacing = lineHeight
	op.GeoM.Translate(14, 14)
	op.ColorScale.ScaleWithColor(debugTextColor)
	text.Draw(screen, strings.Join(lines, "\n"), face, op)
}

func (s *HUDRenderSystem) drawCentered(screen *ebiten.Image, content, fontPath string, size, x, y float64, clr color.Color, alpha float64) {
	if content == "" {
		return
	}
	face, err := s.resourceManager.LoadFont(fontPath, size)
	if err != nil {
		log.Printf("[HUDRenderSystem] Failed to load font %s: %v", fontPath, err)
		return
	}

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, content, face, op)
}

// titleAlpha 标题界面完全不透明，飞入过程中淡出
func titleAlpha(state HUDState) float64 {
	switch state.EntryState {
	case components.EntryStateTitle:
		return 1
	case components.EntryStateEntering:
		return 1 - state.EntryProgress
	default:
		return 0
	}
}

// scrollbarVisible 进度条只在自由浏览时显示
func scrollbarVisible(state HUDState) bool {
	return state.ShowScrollbar && state.EntryState == components.EntryStateExploring
}

// scrollbarHandleRect 返回滑块矩形（x, y, width, height）
func scrollbarHandleRect(screenW, screenH, progress float64) (float64, float64, float64, float64) {
	x, y, w, h := config.ScrollbarTrack(screenW, screenH)
	top := y + config.ScrollbarHandleTop(progress)/100*h
	return x, top, w, h * config.ScrollbarHandleHeight
}
