package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例
// 未调用 Init 时也可直接使用（默认 info 级别，文本格式）
var Log = logrus.New()

// Options 日志配置
type Options struct {
	Level  string    // debug/info/warn/error，空值读取 LOG_LEVEL
	Format string    // text/json，空值读取 LOG_FORMAT
	Output io.Writer // 为 nil 时写到标准输出
}

// Init 初始化全局日志
// 应在 main 中调用一次
func Init(opts Options) {
	level := opts.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)

	format := opts.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if opts.Output != nil {
		Log.SetOutput(opts.Output)
	} else {
		Log.SetOutput(os.Stdout)
	}
}

// WithComponent 返回带 component 字段的日志条目
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
