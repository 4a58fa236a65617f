// Package main 是滚动故事的桌面入口。
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--story <id>       启动时打开的故事（默认：上次浏览的故事）
//	--stories <dir>    从磁盘目录加载故事，而不是使用嵌入的故事
//	--skip-title       跳过标题界面和开场动画
//	--hot              监视 --stories 目录，文件改动时重新加载
//	--verbose          输出详细日志
//
// Controls:
//
//	Enter / 点击 Start   开始
//	Esc / Space          跳过开场
//	滚轮 / 方向键 / 触摸  前进或后退
//	N                    下一个故事
//	F1                   调试信息
//	F5                   重新加载当前故事
//	F11                  全屏
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gonewx/scrollstory/pkg/app"
	"github.com/gonewx/scrollstory/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	storyFlag     = flag.String("story", "", "Story ID to open (default: last viewed)")
	storiesFlag   = flag.String("stories", "", "Load stories from this directory instead of the embedded ones")
	skipTitleFlag = flag.Bool("skip-title", false, "Skip the title screen and entry animation")
	hotFlag       = flag.Bool("hot", false, "Reload stories when files under -stories change")
	verboseFlag   = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)
	stories, err := embedded.Stories()
	if err != nil {
		log.Fatalf("嵌入的故事不可用: %v", err)
	}

	a, err := app.NewApp(app.Config{
		Verbose:   *verboseFlag,
		Story:     *storyFlag,
		StoryDir:  *storiesFlag,
		Stories:   stories,
		SkipTitle: *skipTitleFlag,
		HotReload: *hotFlag,
	})
	if err != nil {
		// 非 verbose 模式下 NewApp 会关闭日志输出
		log.SetOutput(os.Stderr)
		log.Fatalf("初始化失败: %v", err)
	}
	defer a.Close()

	w, h := a.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(a.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		log.Printf("ebiten.RunGame: %v", err)
	}
}
