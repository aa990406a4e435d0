package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New 创建结构化日志器
// 设计说明：
// 1. JSON格式输出，便于日志采集系统（ELK、Loki）解析
// 2. level非法时回退到info，不让日志配置错误阻止服务启动
// 3. output支持stdout/stderr/文件路径
func New(level, format, output string) *logrus.Logger {
	l := logrus.New()

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	l.SetLevel(lv)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch output {
	case "", "stdout":
		l.SetOutput(os.Stdout)
	case "stderr":
		l.SetOutput(os.Stderr)
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			l.SetOutput(os.Stdout)
			l.WithField("path", output).Warn("打开日志文件失败，回退到stdout")
		} else {
			l.SetOutput(file)
		}
	}

	return l
}

// Default 默认日志器（JSON、info级别、stdout）
// 用于未显式注入日志器的场景（如包级工具函数）
func Default() *logrus.Logger {
	return New("info", "json", "stdout")
}
