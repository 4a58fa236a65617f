package game

import (
	"fmt"
	"log"
	"os"

	"github.com/gonewx/scrollstory/pkg/config"
)

// GameState 跨场景共享的应用状态
//
// 由 main 创建一次并显式传给场景工厂和各场景，不使用包级变量。
type GameState struct {
	Settings  *SettingsManager
	Audio     *AudioManager
	Resources *ResourceManager
	Library   *config.StoryLibrary

	// StoryDir 故事目录的磁盘路径，为空表示使用嵌入的故事（不支持热重载）
	StoryDir string

	// DebugOverlay 显示调试信息（F1 切换）
	DebugOverlay bool

	// SkipTitle 命令行 -skip-title
	SkipTitle bool

	// skipTitleOnce 下一个场景跳过标题（重载时保持浏览状态）
	skipTitleOnce bool
}

// NewGameState 创建应用状态
//
// 参数：
//   - library: 已加载的故事库
//   - settings: 设置管理器，可为 nil（使用仅内存的设置）
//   - audio: 音频管理器，可为 nil（静音）
func NewGameState(library *config.StoryLibrary, settings *SettingsManager, audio *AudioManager) *GameState {
	if settings == nil {
		settings, _ = NewSettingsManager(nil)
	}
	if audio == nil {
		audio = NewAudioManager(nil, settings)
	}
	return &GameState{
		Settings:  settings,
		Audio:     audio,
		Resources: NewResourceManager(),
		Library:   library,
	}
}

// Story 返回解析后的故事配置
func (gs *GameState) Story(id string) (*config.StoryConfig, error) {
	if gs.Library == nil {
		return nil, fmt.Errorf("story library not loaded")
	}
	return gs.Library.Get(id)
}

// InitialStoryID 决定启动时打开的故事
//
// 优先级：命令行参数 > 上次打开的故事 > 故事库中的第一个
func (gs *GameState) InitialStoryID(requested string) (string, error) {
	if gs.Library == nil {
		return "", fmt.Errorf("story library not loaded")
	}
	if requested != "" {
		if !gs.Library.Has(requested) {
			return "", fmt.Errorf("unknown story %q (available: %v)", requested, gs.Library.IDs())
		}
		return requested, nil
	}
	if last := gs.Settings.GetSettings().Story; last != "" && gs.Library.Has(last) {
		return last, nil
	}
	return gs.Library.IDs()[0], nil
}

// RequestSkipTitle 让下一个创建的场景跳过标题界面
func (gs *GameState) RequestSkipTitle() {
	gs.skipTitleOnce = true
}

// ConsumeSkipTitle 返回新场景是否应跳过标题，并清除一次性请求
func (gs *GameState) ConsumeSkipTitle() bool {
	once := gs.skipTitleOnce
	gs.skipTitleOnce = false
	return once || gs.SkipTitle || gs.Settings.GetSettings().SkipTitle
}

// NextStoryID 返回下一个故事（循环）
func (gs *GameState) NextStoryID(current string) string {
	return gs.Library.Next(current)
}

// ReloadStoryFile 从磁盘重新读取一个故事文件并验证
//
// 验证失败时故事库保持不变，返回错误。
//
// 返回：
//   - string: 被重载的故事 ID
//   - error: 读取或验证失败
func (gs *GameState) ReloadStoryFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read story %s: %w", path, err)
	}

	candidate := config.NewStoryLibrary()
	for _, id := range gs.Library.IDs() {
		if _, err := candidate.AddSource(gs.Library.Path(id), gs.Library.Source(id)); err != nil {
			return "", err
		}
	}
	id, err := candidate.AddSource(path, data)
	if err != nil {
		return "", err
	}

	// 子故事可能继承自被修改的故事，全部重新验证
	for _, other := range candidate.IDs() {
		if _, err := candidate.Get(other); err != nil {
			return "", err
		}
	}

	gs.Library = candidate
	log.Printf("[GameState] Reloaded story %s from %s", id, path)
	return id, nil
}
