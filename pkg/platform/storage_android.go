//go:build android

package platform

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// PrepareStorage 在 gdata 打开之前创建 /data/data/{package}/saves
//
// gdata 在 Android 上不会创建子目录，首次保存会失败。
func PrepareStorage() error {
	pkg, err := packageName()
	if err != nil {
		return fmt.Errorf("failed to detect Android package: %w", err)
	}

	saves := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(saves, 0o755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", saves, err)
	}

	probe := filepath.Join(saves, ".write_test")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", saves, err)
	}
	return os.Remove(probe)
}

// packageName /proc/self/cmdline 的第一个参数就是应用包名
func packageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	name := string(bytes.TrimSpace(data))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}

// StoragePath 应用的数据目录（调试显示）
func StoragePath() string {
	pkg, err := packageName()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
