package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/ecs"
	"github.com/gonewx/scrollstory/pkg/entities"
	"github.com/gonewx/scrollstory/pkg/game"
	"github.com/gonewx/scrollstory/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// StoryScene 一个滚动故事的场景。
//
// 每帧的更新顺序：
//
//	输入 → 开场动画 → 旅行者 → 相机 → 路标可见度 → 自转 / 星空
//
// 旅行者必须先于相机更新，相机必须先于可见度更新（可见度可能以相机为观察点）。
type StoryScene struct {
	gameState *game.GameState
	storyID   string
	cfg       *config.StoryConfig

	entityManager *ecs.EntityManager
	story         *entities.StoryEntities
	controller    *game.Controller

	inputSystem      *systems.InputSystem
	entrySystem      *systems.EntryAnimationSystem
	travelerSystem   *systems.TravelerSystem
	cameraSystem     *systems.CameraSystem
	visibilitySystem *systems.WaypointVisibilitySystem
	spinSystem       *systems.SpinSystem
	starfieldSystem  *systems.StarfieldSystem
	renderSystem     *systems.RenderSystem
	hudSystem        *systems.HUDRenderSystem

	background color.NRGBA

	// reachedCount 本次浏览到达路标的次数（调试显示）
	reachedCount int

	// reachedListener 额外的到达回调（终端查看器播放提示音）
	reachedListener func(index int)
}

// NewStoryScene 创建故事场景
//
// 参数:
//   - gs: 应用状态（设置、音频、字体、故事库）
//   - storyID: 故事 ID
//
// 返回:
//   - *StoryScene: 场景
//   - error: 故事不存在、配置无效或实体创建失败
func NewStoryScene(gs *game.GameState, storyID string) (*StoryScene, error) {
	cfg, err := gs.Story(storyID)
	if err != nil {
		return nil, err
	}

	progress, resumed := gs.Settings.ResumeProgress(storyID)
	opts := entities.StoryOptions{
		Progress:  progress,
		SkipTitle: gs.ConsumeSkipTitle(),
	}

	em := ecs.NewEntityManager()
	story, err := entities.NewStoryEntities(em, cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build story %s: %w", storyID, err)
	}

	controller := game.NewController(cfg.ScrollParams(), game.InputSpeeds{
		Wheel: cfg.Input.WheelSpeed,
		Touch: cfg.Input.TouchSpeed,
		Key:   cfg.Input.KeyStep,
	})

	s := &StoryScene{
		gameState:     gs,
		storyID:       storyID,
		cfg:           cfg,
		entityManager: em,
		story:         story,
		controller:    controller,
		background:    config.ParseColorOr(cfg.Background, color.NRGBA{A: 255}),
	}

	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	s.inputSystem = systems.NewInputSystem(controller, w, h)
	s.travelerSystem = systems.NewTravelerSystem(em, controller, story.Traveler)
	s.cameraSystem = systems.NewCameraSystem(em, cfg, story, controller)
	s.visibilitySystem = systems.NewWaypointVisibilitySystem(em, cfg, story)
	s.spinSystem = systems.NewSpinSystem(em)
	s.starfieldSystem = systems.NewStarfieldSystem(em, story.Camera)
	s.entrySystem = systems.NewEntryAnimationSystem(em, cfg, story.Entry, story.Camera, controller)
	s.renderSystem = systems.NewRenderSystem(em, gs.Resources, cfg, s.cameraSystem.Projection(), story.Camera)
	s.hudSystem = systems.NewHUDRenderSystem(gs.Resources)

	// 初始化可见度，不触发到达回调（断点续看时不响提示音）
	s.visibilitySystem.Update(0)
	s.visibilitySystem.OnWaypointReached = s.onWaypointReached

	log.Printf("[StoryScene] Story %s ready (resumed=%v, progress=%.2f, skipTitle=%v)",
		storyID, resumed, progress, opts.SkipTitle)
	return s, nil
}

// Update 推进一帧
func (s *StoryScene) Update(deltaTime float64) {
	s.inputSystem.Update(deltaTime)
	s.Step(deltaTime)
}

// Step 推进输入之后的全部系统
//
// 不读取 ebiten 输入，无窗口的驱动程序（终端查看器、回放验证）直接调用。
func (s *StoryScene) Step(deltaTime float64) {
	s.entrySystem.Update(deltaTime)
	s.travelerSystem.Update(deltaTime)
	s.cameraSystem.Update(deltaTime)
	s.visibilitySystem.Update(deltaTime)
	s.spinSystem.Update(deltaTime)
	s.starfieldSystem.Update(deltaTime)
}

// Draw 绘制场景
func (s *StoryScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	s.renderSystem.Draw(screen)
	s.hudSystem.Draw(screen, s.hudState())
}

// ScreenSize 故事配置的逻辑屏幕尺寸
func (s *StoryScene) ScreenSize() (int, int) {
	return s.cfg.Window.Width, s.cfg.Window.Height
}

// SaveOnExit 保存当前故事和旅行者进度
func (s *StoryScene) SaveOnExit() bool {
	settings := s.gameState.Settings
	settings.SetStory(s.storyID)
	settings.SetResumeProgress(s.storyID, s.travelerSystem.Progress())
	if err := settings.Save(); err != nil {
		log.Printf("[StoryScene] Failed to save progress: %v", err)
		return false
	}
	return true
}

// StoryID 场景对应的故事
func (s *StoryScene) StoryID() string {
	return s.storyID
}

// Controller 场景的交互控制器
func (s *StoryScene) Controller() *game.Controller {
	return s.controller
}

// Progress 旅行者进度 [0,1]
func (s *StoryScene) Progress() float64 {
	return s.travelerSystem.Progress()
}

// onWaypointReached 路标回调：提示音 + 相机重新补间
func (s *StoryScene) onWaypointReached(index int) {
	s.reachedCount++
	s.cameraSystem.OnWaypointReached(index)
	if s.gameState.Audio != nil {
		s.gameState.Audio.PlayWaypointChime(index)
	}
	if s.reachedListener != nil {
		s.reachedListener(index)
	}
}

// SetReachedListener 设置路标到达时的额外回调
func (s *StoryScene) SetReachedListener(fn func(index int)) {
	s.reachedListener = fn
}

func (s *StoryScene) hudState() systems.HUDState {
	state := systems.HUDState{
		Title:         s.cfg.Title,
		Subtitle:      s.cfg.Subtitle,
		EntryState:    s.entrySystem.State(),
		EntryProgress: s.entrySystem.Progress(),
		Progress:      s.travelerSystem.Progress(),
		ShowScrollbar: s.gameState.Settings.GetSettings().ShowScrollbar,
		Debug:         s.gameState.DebugOverlay,
	}
	if state.Debug {
		state.DebugLines = s.debugLines()
	}
	return state
}
