// Package utils 提供前端共用的平台工具
package utils

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// AppName 存储使用的应用名
const AppName = "aimtrainer"

// OpenStorage 打开设置存储
//
// 先确保平台存储目录可用，再交给 gdata 打开。
// 返回错误时调用方应以无持久化模式继续运行。
func OpenStorage(appName string) (*gdata.Manager, error) {
	if appName == "" {
		appName = AppName
	}
	if err := EnsureStorageDir(appName); err != nil {
		return nil, fmt.Errorf("prepare storage dir: %w", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open gdata %q: %w", appName, err)
	}
	return m, nil
}
