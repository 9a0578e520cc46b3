//go:build !android

package utils

// EnsureStorageDir 桌面平台由 gdata 自行创建目录
func EnsureStorageDir(appName string) error {
	return nil
}

// StoragePath 桌面平台不暴露路径
func StoragePath(appName string) string {
	return ""
}
