package restmapper

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var _ logrus.Hook = (*LoggerFileHook)(nil)

// LoggerFileHook 按级别写入滚动日志文件的钩子
type LoggerFileHook struct {
	name    string
	opt     *LoggerConfig
	manager LogWriterManager
}

// NewLoggerFileHook 创建日志文件钩子
func NewLoggerFileHook(name string, opt *LoggerConfig) *LoggerFileHook {
	return &LoggerFileHook{
		name:    name,
		opt:     opt,
		manager: _logWriterManager,
	}
}

// Levels 实现 logrus.Hook 接口，返回支持的日志级别
func (h *LoggerFileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 实现 logrus.Hook 接口，格式化后写入对应级别的文件
func (h *LoggerFileHook) Fire(entry *logrus.Entry) error {
	writer, err := h.manager.GetWriter(h.opt, h.name, entry.Level)
	if err != nil {
		h.printError("get log writer failed: %v", err)
		return err
	}

	msg, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		h.printError("format log entry failed: %v", err)
		return err
	}

	if _, err = writer.Write(msg); err != nil {
		h.printError("write log entry failed: %v", err)
		return err
	}

	return nil
}

func (h *LoggerFileHook) printError(format string, args ...interface{}) {
	if h.opt.PrintError {
		_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
