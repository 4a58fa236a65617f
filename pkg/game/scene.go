package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the application (a loaded story).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口，场景在退出或切换前保存状态
//
// 调用时机：
//   - 窗口关闭
//   - 切换到另一个故事
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}

// Sized 可选接口，场景提供自己的逻辑屏幕尺寸
type Sized interface {
	ScreenSize() (int, int)
}
