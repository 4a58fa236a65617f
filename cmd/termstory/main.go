// Package main 在终端里浏览滚动故事。
//
// Usage:
//
//	go run ./cmd/termstory [flags]
//
// Flags:
//
//	--story <id>       要打开的故事（默认：上次浏览的故事）
//	--stories <dir>    故事目录（默认：data/stories）
//	--mute             不播放提示音
//	--verbose          把日志写到 termstory.log
//
// Controls:
//
//	Enter        开始
//	Esc / Space  跳过开场
//	滚轮 / ↑↓ / PgUp PgDn  前进或后退
//	n            下一个故事
//	q / Ctrl-C   退出
//
// 浏览进度与桌面版共用 gdata 存档。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/scrollstory/pkg/app"
	"github.com/gonewx/scrollstory/pkg/chime"
	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/game"
	"github.com/gonewx/scrollstory/pkg/scenes"
	"github.com/gopxl/beep/speaker"
	"github.com/quasilyte/gdata/v2"
)

const frameTime = 1.0 / 60.0

var (
	storyFlag   = flag.String("story", "", "Story ID to open (default: last viewed)")
	storiesFlag = flag.String("stories", "data/stories", "Story directory")
	muteFlag    = flag.Bool("mute", false, "Disable the waypoint chime")
	verboseFlag = flag.Bool("verbose", false, "Write logs to termstory.log")
)

// viewer 终端查看器
type viewer struct {
	screen    tcell.Screen
	gameState *game.GameState
	scene     *scenes.StoryScene
	audioInit bool
}

func newViewer() (*viewer, error) {
	lib, err := config.LoadStoryLibrary(os.DirFS(*storiesFlag), ".")
	if err != nil {
		return nil, err
	}

	var storage *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: app.AppName}); err != nil {
		log.Printf("[termstory] gdata unavailable, progress will not persist: %v", err)
	} else {
		storage = m
	}
	settings, err := game.NewSettingsManager(storage)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	v := &viewer{
		screen:    screen,
		gameState: game.NewGameState(lib, settings, nil),
	}
	if !*muteFlag {
		if err := v.initAudio(); err != nil {
			// 没有声卡时照常运行
			log.Printf("[termstory] Audio initialization failed: %v", err)
		}
	}

	id, err := v.gameState.InitialStoryID(*storyFlag)
	if err != nil {
		v.cleanup()
		return nil, err
	}
	if err := v.load(id); err != nil {
		v.cleanup()
		return nil, err
	}
	return v, nil
}

func (v *viewer) initAudio() error {
	err := speaker.Init(chime.SampleRate, chime.SampleRate.N(100*time.Millisecond))
	if err == nil {
		v.audioInit = true
	}
	return err
}

// load 切换故事，先保存当前故事的进度
func (v *viewer) load(id string) error {
	if v.scene != nil {
		v.scene.SaveOnExit()
	}
	scene, err := scenes.NewStoryScene(v.gameState, id)
	if err != nil {
		return err
	}
	scene.SetReachedListener(v.playChime)
	v.scene = scene
	return nil
}

func (v *viewer) playChime(index int) {
	if !v.audioInit || !v.gameState.Settings.GetSettings().SoundEnabled {
		return
	}
	vol := v.gameState.Settings.GetSettings().SoundVolume
	speaker.Play(chime.New(chime.PitchFor(index), vol))
}

func (v *viewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(v.screen, eventChan, done)

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.scene.Step(frameTime)
			v.draw()
		}
	}
}

// pollEvents 把终端事件转发到 events，done 关闭后退出
func pollEvents(screen eventSource, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// eventSource tcell.Screen 的事件部分
type eventSource interface {
	PollEvent() tcell.Event
}

// handleEvent 返回 false 表示退出
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		act := keyAction(ev.Key(), ev.Rune())
		switch act {
		case actionQuit:
			return false
		case actionNext:
			next := v.gameState.NextStoryID(v.scene.StoryID())
			if err := v.load(next); err != nil {
				log.Printf("[termstory] Failed to switch story: %v", err)
			}
		default:
			apply(v.scene.Controller(), act)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		cols, rows := v.screen.Size()
		c := v.scene.Controller()
		c.OnMouseMove(float64(x), float64(y), float64(cols), float64(rows))
		apply(c, wheelAction(ev.Buttons()))
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) cleanup() {
	if v.scene != nil && !v.scene.SaveOnExit() {
		log.Printf("[termstory] Failed to save progress")
	}
	if v.audioInit {
		speaker.Close()
	}
	v.screen.Fini()
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *verboseFlag {
		if f, err := os.Create("termstory.log"); err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	v, err := newViewer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer v.cleanup()

	v.run()
}
