package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定故事的场景，避免 game 包依赖 scenes 包
type SceneFactory func(storyID string) (Scene, error)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene   Scene
	currentStoryID string
	sceneFactory   SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentStoryID 返回当前故事 ID
func (sm *SceneManager) CurrentStoryID() string {
	return sm.currentStoryID
}

// SaveCurrent 让当前场景保存状态（如果它实现了 Saveable）
func (sm *SceneManager) SaveCurrent() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// LoadStory 加载指定故事的场景
//
// 新场景创建成功后才会替换当前场景，失败时保留原场景继续运行。
// 切换前会先让旧场景保存进度。
func (sm *SceneManager) LoadStory(storyID string) error {
	log.Printf("[SceneManager] 加载故事: %s", storyID)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	newScene, err := sm.sceneFactory(storyID)
	if err != nil {
		log.Printf("[SceneManager] 错误: 无法创建故事场景 %s: %v", storyID, err)
		return fmt.Errorf("failed to load story %q: %w", storyID, err)
	}

	sm.SaveCurrent()
	sm.SwitchTo(newScene)
	sm.currentStoryID = storyID
	log.Printf("[SceneManager] 成功切换到故事: %s", storyID)
	return nil
}

// ReloadCurrent 重新创建当前故事的场景
//
// 先保存当前场景的进度，新场景据此恢复旅行者位置。
func (sm *SceneManager) ReloadCurrent() error {
	if sm.currentStoryID == "" {
		return fmt.Errorf("no story loaded")
	}
	sm.SaveCurrent()
	return sm.LoadStory(sm.currentStoryID)
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
