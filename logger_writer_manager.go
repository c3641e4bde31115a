package restmapper

import (
	"fmt"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// _logWriterManager 全局日志写入器管理器实例
	_logWriterManager = newLogWriterManager()
)

// LogWriterManager 日志写入器管理接口
type LogWriterManager interface {
	GetWriter(opt *LoggerConfig, name string, level logrus.Level) (writer *rotatelogs.RotateLogs, err error)
}

// logWriterManager 日志写入器管理器实现
type logWriterManager struct {
	writers sync.Map
	mu      sync.Mutex
}

func newLogWriterManager() LogWriterManager {
	return &logWriterManager{}
}

func (m *logWriterManager) makeWriterKey(path, name string, level logrus.Level) string {
	return fmt.Sprintf("x:log:writer:%s:%s:%s", path, name, level.String())
}

// createWriter 创建按小时滚动的日志写入器
func (m *logWriterManager) createWriter(opt *LoggerConfig, name string, level logrus.Level) (*rotatelogs.RotateLogs, error) {
	if opt.Path == "" || name == "" {
		return nil, errors.New("log path and name cannot be empty")
	}

	paths := NewLogPathConfig(opt.Path, name, level)
	paths.Init()

	options := []rotatelogs.Option{
		rotatelogs.WithLinkName(paths.LinkPath),
		rotatelogs.WithRotationTime(time.Hour),
		rotatelogs.WithClock(rotatelogs.Local),
	}

	// MaxAge 与 RotationCount 不能同时设置
	if opt.RotationCount > 0 {
		options = append(options, rotatelogs.WithMaxAge(-1), rotatelogs.WithRotationCount(opt.RotationCount))
	} else if opt.MaxAge > 0 {
		options = append(options, rotatelogs.WithMaxAge(time.Duration(opt.MaxAge)*time.Hour))
	} else {
		options = append(options, rotatelogs.WithMaxAge(-1))
	}

	writer, err := rotatelogs.New(paths.FilePath, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "init log writer: path=%s, name=%s, level=%s", opt.Path, name, level.String())
	}

	return writer, nil
}

// GetWriter 获取或创建日志写入器
func (m *logWriterManager) GetWriter(opt *LoggerConfig, name string, level logrus.Level) (*rotatelogs.RotateLogs, error) {
	key := m.makeWriterKey(opt.Path, name, level)
	if value, ok := m.writers.Load(key); ok {
		return value.(*rotatelogs.RotateLogs), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if value, ok := m.writers.Load(key); ok {
		return value.(*rotatelogs.RotateLogs), nil
	}

	writer, err := m.createWriter(opt, name, level)
	if err != nil {
		return nil, err
	}

	m.writers.Store(key, writer)
	return writer, nil
}
