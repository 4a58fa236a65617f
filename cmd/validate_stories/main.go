// Package main 检查故事目录下的全部故事文件。
//
// Usage:
//
//	go run ./cmd/validate_stories [--dir data/stories]
//
// 每个文件单独解析，然后解析 extends 并验证。任一故事无效时退出码为 1。
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gonewx/scrollstory/pkg/config"
)

var dirFlag = flag.String("dir", "data/stories", "Story directory to validate")

func main() {
	flag.Parse()

	entries, err := os.ReadDir(*dirFlag)
	if err != nil {
		fmt.Printf("❌ 读取目录失败: %v\n", err)
		os.Exit(1)
	}

	lib := config.NewStoryLibrary()
	failed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := config.FormatFromPath(entry.Name()); !ok {
			continue
		}
		p := filepath.Join(*dirFlag, entry.Name())
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Printf("❌ %s: 读取失败: %v\n", p, err)
			failed++
			continue
		}
		if _, err := lib.AddSource(p, data); err != nil {
			fmt.Printf("❌ %s: %v\n", p, err)
			failed++
		}
	}

	ids := lib.IDs()
	if len(ids) == 0 && failed == 0 {
		fmt.Printf("❌ %s 中没有故事文件\n", *dirFlag)
		os.Exit(1)
	}
	sort.Strings(ids)

	for _, id := range ids {
		cfg, err := lib.Get(id)
		if err != nil {
			fmt.Printf("❌ %s (%s): %v\n", id, lib.Path(id), err)
			failed++
			continue
		}
		fmt.Printf("✅ %-20s %d 个路标, 旅行范围 %s [%.0f, %.0f], 窗口 %dx%d\n",
			id, len(cfg.Waypoints), cfg.TravelerAxis(), cfg.Traveler.Start, cfg.Traveler.End,
			cfg.Window.Width, cfg.Window.Height)
	}

	if failed > 0 {
		fmt.Printf("❌ 有 %d 个故事无效\n", failed)
		os.Exit(1)
	}
	fmt.Printf("✅ 全部 %d 个故事有效\n", len(ids))
}
