package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局设置
type GameSettings struct {
	// Story 上次打开的故事 ID
	Story string `yaml:"story"`

	// 音效设置
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 路标提示音开关

	// 显示设置
	Fullscreen    bool `yaml:"fullscreen"`    // 启动时是否全屏
	ShowScrollbar bool `yaml:"showScrollbar"` // 是否显示右侧进度条
	SkipTitle     bool `yaml:"skipTitle"`     // 跳过标题界面和开场动画

	// Resume 每个故事上次退出时旅行者的进度 [0,1]
	Resume map[string]float64 `yaml:"resume,omitempty"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:   0.6,
		SoundEnabled:  true,
		Fullscreen:    false,
		ShowScrollbar: true,
		Resume:        make(map[string]float64),
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *GameSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方，加载失败只记录日志
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置，文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.Resume == nil {
		loaded.Resume = make(map[string]float64)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetStory 记录当前故事
func (sm *SettingsManager) SetStory(id string) {
	sm.settings.Story = id
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
// 注意：仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampUnit(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowScrollbar 设置进度条是否显示
func (sm *SettingsManager) SetShowScrollbar(enabled bool) {
	sm.settings.ShowScrollbar = enabled
}

// SetSkipTitle 设置是否跳过标题界面
func (sm *SettingsManager) SetSkipTitle(enabled bool) {
	sm.settings.SkipTitle = enabled
}

// ResumeProgress 返回故事上次的进度
//
// 返回:
//   - float64: 进度 [0,1]
//   - bool: 是否有记录
func (sm *SettingsManager) ResumeProgress(storyID string) (float64, bool) {
	p, ok := sm.settings.Resume[storyID]
	return p, ok
}

// SetResumeProgress 记录故事进度
func (sm *SettingsManager) SetResumeProgress(storyID string, progress float64) {
	if sm.settings.Resume == nil {
		sm.settings.Resume = make(map[string]float64)
	}
	sm.settings.Resume[storyID] = clampUnit(progress)
}

// ClearResumeProgress 删除故事进度记录
func (sm *SettingsManager) ClearResumeProgress(storyID string) {
	delete(sm.settings.Resume, storyID)
}

func clampUnit(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
