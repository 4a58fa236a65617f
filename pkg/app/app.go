// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/gonewx/scrollstory/pkg/chime"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/game"
	"github.com/gonewx/scrollstory/pkg/platform"
	"github.com/gonewx/scrollstory/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "scrollstory"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Story 启动时打开的故事 ID，为空则使用上次的故事
	Story string
	// StoryDir 从磁盘目录加载故事，为空则使用嵌入的故事
	StoryDir string
	// Stories 嵌入的故事文件系统（StoryDir 为空时使用）
	Stories fs.FS
	// SkipTitle 跳过标题界面和开场动画
	SkipTitle bool
	// HotReload 监视 StoryDir，文件改动时重新加载
	HotReload bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	gameState    *game.GameState
	sceneManager *game.SceneManager
	watcher      *game.StoryWatcher
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	library, err := loadLibrary(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Loaded %d stories: %v", len(library.IDs()), library.IDs())

	// gdata 不可用时降级为仅内存设置
	if err := platform.PrepareStorage(); err != nil {
		log.Printf("[App] Warning: failed to prepare storage: %v", err)
	}
	var storage *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: AppName}); err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
	} else {
		storage = m
	}
	settingsManager, err := game.NewSettingsManager(storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings manager: %w", err)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(int(chime.SampleRate))
	audioManager := game.NewAudioManager(audioContext, settingsManager)
	log.Printf("[App] AudioManager initialized")

	gameState := game.NewGameState(library, settingsManager, audioManager)
	gameState.StoryDir = cfg.StoryDir
	gameState.SkipTitle = cfg.SkipTitle

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(storyID string) (game.Scene, error) {
		return scenes.NewStoryScene(gameState, storyID)
	})

	storyID, err := gameState.InitialStoryID(cfg.Story)
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Starting story: %s", storyID)
	if err := sceneManager.LoadStory(storyID); err != nil {
		return nil, err
	}

	a := &App{
		gameState:    gameState,
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}

	if cfg.HotReload {
		if cfg.StoryDir == "" {
			log.Printf("[App] Warning: -hot requires -stories, hot reload disabled")
		} else if w, err := game.NewStoryWatcher(cfg.StoryDir); err != nil {
			log.Printf("[App] Warning: hot reload disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	// 移动端总是全屏，不读取全屏设置
	if !platform.IsMobile() && settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// loadLibrary 从磁盘目录或嵌入文件系统读取故事库
func loadLibrary(cfg Config) (*config.StoryLibrary, error) {
	if cfg.StoryDir != "" {
		return config.LoadStoryLibrary(os.DirFS(cfg.StoryDir), ".")
	}
	if cfg.Stories == nil {
		return nil, fmt.Errorf("no story source: set StoryDir or Stories")
	}
	return config.LoadStoryLibrary(cfg.Stories, ".")
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.Layout(0, 0)
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if !platform.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// F1 调试信息
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.gameState.DebugOverlay = !a.gameState.DebugOverlay
	}

	// N 下一个故事
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		next := a.gameState.NextStoryID(a.sceneManager.CurrentStoryID())
		if err := a.sceneManager.LoadStory(next); err != nil {
			log.Printf("[App] Failed to switch story: %v", err)
		} else {
			ebiten.SetWindowTitle(a.Title())
		}
	}

	// F5 从磁盘重新加载当前故事
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.reloadCurrent()
	}

	if a.watcher != nil {
		for _, path := range a.watcher.Poll() {
			a.reloadFile(path)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	settings := a.gameState.Settings
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
		settings.SetFullscreen(true)
	}
}

// reloadCurrent 重新读取当前故事的源文件
func (a *App) reloadCurrent() {
	if a.gameState.StoryDir == "" {
		log.Printf("[App] Reload ignored: stories are embedded")
		return
	}
	id := a.sceneManager.CurrentStoryID()
	path := a.gameState.Library.Path(id)
	if path == "" {
		return
	}
	a.reloadFile(joinStoryPath(a.gameState.StoryDir, path))
}

// reloadFile 重新加载一个故事文件，验证失败时保留当前故事
func (a *App) reloadFile(path string) {
	id, err := a.gameState.ReloadStoryFile(path)
	if err != nil {
		log.Printf("[App] Reload of %s rejected: %v", path, err)
		return
	}
	log.Printf("[App] Story %s changed, rebuilding scene", id)

	// 当前故事可能继承自被修改的故事，总是重建
	a.gameState.RequestSkipTitle()
	if err := a.sceneManager.ReloadCurrent(); err != nil {
		log.Printf("[App] Failed to rebuild scene: %v", err)
	}
	// 场景创建失败时一次性请求不应留给之后的场景
	a.gameState.ConsumeSkipTitle()
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时上下或左右为黑边）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 使用当前故事配置的窗口尺寸，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if sized, ok := a.sceneManager.GetCurrentScene().(game.Sized); ok {
		return sized.ScreenSize()
	}
	return config.DefaultWindowWidth, config.DefaultWindowHeight
}

// Close 保存进度并停止文件监视
// 在窗口关闭（ebiten.RunGame 返回）后调用
func (a *App) Close() {
	if !a.sceneManager.SaveCurrent() {
		log.Printf("[App] Warning: failed to save progress on exit")
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[App] Warning: failed to stop story watcher: %v", err)
		}
	}
}

// Title 当前故事的窗口标题
func (a *App) Title() string {
	cfg, err := a.gameState.Story(a.sceneManager.CurrentStoryID())
	if err != nil || cfg.Title == "" {
		return AppName
	}
	return cfg.Title
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
