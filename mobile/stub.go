//go:build !mobile

// Package mobile 的桌面端占位：真正的绑定入口只在 -tags mobile 时编译，
// 这里保证 go build ./... 和 go vet ./... 在桌面端也能通过。
package mobile

// Dummy 供 ebitenmobile 识别包的导出函数
func Dummy() {}
