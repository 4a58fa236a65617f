package config

// 布局配置常量
// 本文件定义窗口和屏幕空间 UI 元素（滚动条、标题、开始按钮）的布局参数

const (
	// DefaultWindowWidth 默认逻辑屏幕宽度
	DefaultWindowWidth = 1280
	// DefaultWindowHeight 默认逻辑屏幕高度
	DefaultWindowHeight = 720
)

// 滚动条布局（屏幕坐标，右侧贴边）
const (
	ScrollbarMarginRight = 12.0
	ScrollbarMarginY     = 40.0
	ScrollbarTrackWidth  = 6.0
	// ScrollbarHandleHeight 滑块高度占轨道高度的比例
	ScrollbarHandleHeight = 0.08
)

// 标题界面布局
const (
	// TitleY 标题基线距屏幕顶部的比例
	TitleY = 0.30
	// SubtitleY 副标题距屏幕顶部的比例
	SubtitleY = 0.40
	TitleFontSize    = 56.0
	SubtitleFontSize = 22.0

	// StartButtonY 开始按钮中心距屏幕顶部的比例
	StartButtonY      = 0.62
	StartButtonWidth  = 180.0
	StartButtonHeight = 52.0
	StartButtonFont   = 24.0
)

// 路标文字在屏幕上的像素字号限制
const (
	MinTextPixelSize = 4.0
	MaxTextPixelSize = 160.0
)

// StartButtonRect 返回开始按钮在屏幕上的矩形
//
// 返回值：x0, y0, x1, y1
func StartButtonRect(screenW, screenH float64) (float64, float64, float64, float64) {
	cx := screenW / 2
	cy := screenH * StartButtonY
	return cx - StartButtonWidth/2, cy - StartButtonHeight/2, cx + StartButtonWidth/2, cy + StartButtonHeight/2
}

// ScrollbarTrack 返回滚动条轨道的矩形
//
// 返回值：x, y, width, height
func ScrollbarTrack(screenW, screenH float64) (float64, float64, float64, float64) {
	x := screenW - ScrollbarMarginRight - ScrollbarTrackWidth
	y := ScrollbarMarginY
	return x, y, ScrollbarTrackWidth, screenH - 2*ScrollbarMarginY
}

// ScrollbarHandleTop 根据进度计算滑块的 top 百分比（0~100）
//
// 滑块顶部从 0% 移动到 (100 - 滑块高度)%，保证滑块不超出轨道。
func ScrollbarHandleTop(progress float64) float64 {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return progress * (1 - ScrollbarHandleHeight) * 100
}
