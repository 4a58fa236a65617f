// Package main 无窗口回放滚动输入，验证旅行者、相机和路标可见度。
//
// Usage:
//
//	go run ./cmd/verify_scroll [flags]
//
// Flags:
//
//	--story <id>        要验证的故事（默认：第一个）
//	--stories <dir>     故事目录（默认：data/stories）
//	--wheel <deltaY>    每一步的滚轮 deltaY（默认：100，即一格）
//	--steps <n>         滚动步数（默认：60）
//	--frames <n>        每步之后推进的帧数（默认：10）
//	--back              走到终点后再反向滚回起点
//	--verbose           输出系统日志
//
// 检查项：
//   - 旅行者进度始终在 [0,1] 内
//   - 正向滚动时进度不减，反向滚动时不增
//   - 任意时刻最多一个路标的透明度 > 0
//   - 旅行者扫过的路标都触发过到达回调（未触发时给出警告）
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/scrollstory/pkg/config"
	"github.com/gonewx/scrollstory/pkg/game"
	"github.com/gonewx/scrollstory/pkg/motion"
	"github.com/gonewx/scrollstory/pkg/scenes"
	"github.com/muesli/termenv"
)

const frameTime = 1.0 / 60.0

var (
	storyFlag   = flag.String("story", "", "Story ID to verify (default: first story)")
	storiesFlag = flag.String("stories", "data/stories", "Story directory")
	wheelFlag   = flag.Float64("wheel", game.WheelPixelsPerNotch, "Wheel deltaY per step")
	stepsFlag   = flag.Int("steps", 60, "Number of scroll steps")
	framesFlag  = flag.Int("frames", 10, "Frames simulated after each step")
	backFlag    = flag.Bool("back", false, "Scroll back to the start after reaching the end")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// report 彩色输出
type report struct {
	out      *termenv.Output
	failures int
}

func (r *report) ok(format string, args ...any) {
	fmt.Fprintln(r.out, r.out.String("✓ "+fmt.Sprintf(format, args...)).Foreground(r.out.Color("2")))
}

func (r *report) fail(format string, args ...any) {
	r.failures++
	fmt.Fprintln(r.out, r.out.String("✗ "+fmt.Sprintf(format, args...)).Foreground(r.out.Color("1")).Bold())
}

func (r *report) warn(format string, args ...any) {
	fmt.Fprintln(r.out, r.out.String("! "+fmt.Sprintf(format, args...)).Foreground(r.out.Color("3")))
}

func (r *report) row(snap scenes.Snapshot) {
	label := "-"
	opacity := 0.0
	if snap.Current >= 0 {
		wp := snap.Waypoints[snap.Current]
		label = fmt.Sprintf("#%d %s", wp.Index, wp.Label)
		opacity = wp.Opacity
	}
	line := fmt.Sprintf("  p=%.3f  traveler=(%.1f, %.1f, %.1f)  camera=(%.1f, %.1f, %.1f)  %-24s %.2f",
		snap.Progress,
		snap.Traveler.X(), snap.Traveler.Y(), snap.Traveler.Z(),
		snap.Camera.X(), snap.Camera.Y(), snap.Camera.Z(),
		label, opacity)
	style := r.out.String(line)
	if snap.Current >= 0 && opacity > 0 {
		style = style.Foreground(r.out.Color("6"))
	} else {
		style = style.Faint()
	}
	fmt.Fprintln(r.out, style)
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	r := &report{out: termenv.NewOutput(os.Stdout)}

	lib, err := config.LoadStoryLibrary(os.DirFS(*storiesFlag), ".")
	if err != nil {
		r.fail("加载故事失败: %v", err)
		os.Exit(1)
	}
	id := *storyFlag
	if id == "" {
		id = lib.IDs()[0]
	}

	gs := game.NewGameState(lib, nil, nil)
	gs.RequestSkipTitle()
	scene, err := scenes.NewStoryScene(gs, id)
	if err != nil {
		r.fail("创建场景失败: %v", err)
		os.Exit(1)
	}

	var reached []int
	scene.SetReachedListener(func(index int) { reached = append(reached, index) })

	initial := scene.Snapshot()
	axis := scene.Config().TravelerAxis()
	lo, hi := axis.Get(initial.Traveler), axis.Get(initial.Traveler)
	fmt.Fprintln(r.out, r.out.String(fmt.Sprintf("Story %s: %d waypoints, axis %s", id, len(initial.Waypoints), axis)).Bold())

	run := func(direction float64) {
		last := scene.Snapshot().Progress
		for i := 0; i < *stepsFlag; i++ {
			scene.Controller().OnWheel(direction * *wheelFlag)
			for f := 0; f < *framesFlag; f++ {
				scene.Step(frameTime)
				snap := scene.Snapshot()
				check(r, snap, &last, direction)
				pos := axis.Get(snap.Traveler)
				lo, hi = min(lo, pos), max(hi, pos)
			}
			r.row(scene.Snapshot())
		}
	}

	run(1)
	if *backFlag {
		run(-1)
	}

	r.summary(initial, scene.Snapshot(), reached, axis, lo, hi)
	if r.failures > 0 {
		os.Exit(1)
	}
}

// check 单帧检查
func check(r *report, snap scenes.Snapshot, last *float64, direction float64) {
	if snap.Progress < 0 || snap.Progress > 1 {
		r.fail("progress %.6f out of [0,1]", snap.Progress)
	}
	if direction > 0 && snap.Progress < *last-1e-9 {
		r.fail("progress went backwards: %.6f -> %.6f", *last, snap.Progress)
	}
	if direction < 0 && snap.Progress > *last+1e-9 {
		r.fail("progress went forwards: %.6f -> %.6f", *last, snap.Progress)
	}
	*last = snap.Progress

	visible := 0
	for _, wp := range snap.Waypoints {
		if wp.Opacity > 0 {
			visible++
		}
	}
	if visible > 1 {
		r.fail("%d waypoints visible at p=%.3f", visible, snap.Progress)
	}
}

// summary 终点统计
//
// 旅行者轴向扫过的区间内的路标应该都到达过；偏离轨迹太远的路标可能
// 永远达不到阈值，因此只给出警告。
func (r *report) summary(initial, final scenes.Snapshot, reached []int, axis motion.Axis, lo, hi float64) {
	fmt.Fprintln(r.out)
	r.ok("final progress %.3f, %d reach events", final.Progress, len(reached))

	seen := make(map[int]bool, len(reached))
	for _, idx := range reached {
		seen[idx] = true
	}
	for i, wp := range final.Waypoints {
		coord := axis.Get(wp.Position)
		switch {
		case seen[wp.Index]:
			r.ok("waypoint #%d %q reached", wp.Index, wp.Label)
		case initial.Waypoints[i].Reached:
			r.ok("waypoint #%d %q visible at start", wp.Index, wp.Label)
		case coord >= lo && coord <= hi:
			r.warn("waypoint #%d %q was passed but never reached", wp.Index, wp.Label)
		}
	}
}
