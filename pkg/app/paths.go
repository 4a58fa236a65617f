package app

import (
	"path/filepath"
	"strings"
)

// joinStoryPath 把故事库记录的路径转换为磁盘路径
//
// 初次加载的路径相对于故事目录，热重载后记录的是监视器给出的完整路径。
func joinStoryPath(dir, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	cleanDir := filepath.Clean(dir)
	if cleanDir != "." && strings.HasPrefix(filepath.Clean(p), cleanDir+string(filepath.Separator)) {
		return p
	}
	return filepath.Join(dir, p)
}
