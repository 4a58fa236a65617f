//go:build mobile

// Package platform 区分桌面端与移动端，并准备存档目录
package platform

// IsMobile 移动端构建总是返回 true
func IsMobile() bool {
	return true
}
