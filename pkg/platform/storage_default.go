//go:build !android

package platform

// PrepareStorage gdata 在这些平台上自行创建存档目录
func PrepareStorage() error {
	return nil
}

// StoragePath 非 Android 平台由 gdata 决定，返回空字符串
func StoragePath() string {
	return ""
}
