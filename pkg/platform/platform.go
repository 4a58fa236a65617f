//go:build !mobile

// Package platform 区分桌面端与移动端，并准备存档目录
package platform

import "os"

// EmulateMobileEnv 设置为 "1" 时桌面端按移动端处理（本地调试触摸界面）
const EmulateMobileEnv = "SCROLLSTORY_MOBILE_EMULATE"

// IsMobile 桌面端构建时只在设置了 EmulateMobileEnv 时返回 true
func IsMobile() bool {
	return os.Getenv(EmulateMobileEnv) == "1"
}
