package restmapper

import (
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimestampFormat = "2006-01-02 15:04:05.000"
)

// 同一时间格式的日志记录器共用一个格式化器
var formatterCache sync.Map

func sharedFormatter(timestampFormat string) logrus.Formatter {
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	if cached, ok := formatterCache.Load(timestampFormat); ok {
		return cached.(logrus.Formatter)
	}

	actual, _ := formatterCache.LoadOrStore(timestampFormat, &LoggerFormatter{TimestampFormat: timestampFormat})
	return actual.(logrus.Formatter)
}

// LoggerBuilderOption 日志构建选项
type LoggerBuilderOption func(*LoggerBuilder)

// WithTimestampFormat 指定时间格式，使用共享的 LoggerFormatter
func WithTimestampFormat(format string) LoggerBuilderOption {
	return func(b *LoggerBuilder) {
		b.timestampFormat = format
	}
}

// WithFormatter 替换格式化器，优先于 WithTimestampFormat
func WithFormatter(formatter logrus.Formatter) LoggerBuilderOption {
	return func(b *LoggerBuilder) {
		b.formatter = formatter
	}
}

// WithHooks 追加钩子，例如把映射日志转发到业务方的日志系统
func WithHooks(hooks ...logrus.Hook) LoggerBuilderOption {
	return func(b *LoggerBuilder) {
		b.hooks = append(b.hooks, hooks...)
	}
}

// LoggerBuilder 按 LoggerConfig 构建 logrus.Logger
//
// 使用示例:
//
//	entry := restmapper.NewLoggerBuilder("mapper", conf,
//	    restmapper.WithTimestampFormat(time.RFC3339),
//	).Make()
type LoggerBuilder struct {
	name            string
	opt             *LoggerConfig
	timestampFormat string
	formatter       logrus.Formatter
	hooks           []logrus.Hook
}

// NewLoggerBuilder 创建日志构建器，opt 为 nil 时使用默认日志配置
func NewLoggerBuilder(name string, opt *LoggerConfig, options ...LoggerBuilderOption) *LoggerBuilder {
	if opt == nil {
		opt = GetDefaultLoggerConfig()
	}

	b := &LoggerBuilder{name: name, opt: opt}
	for _, option := range options {
		option(b)
	}

	return b
}

func (b *LoggerBuilder) String() string {
	return fmt.Sprintf("%s:%s:%s", b.name, b.opt.Path, b.opt.level())
}

func (b *LoggerBuilder) levelHooks() logrus.LevelHooks {
	hooks := make(logrus.LevelHooks)
	for _, hook := range b.hooks {
		hooks.Add(hook)
	}

	// 配置了路径时按级别写入滚动日志文件
	if b.opt.Path != "" {
		hooks.Add(NewLoggerFileHook(b.name, b.opt))
	}

	return hooks
}

// Make 创建 logrus.Logger
func (b *LoggerBuilder) Make() *logrus.Logger {
	formatter := b.formatter
	if formatter == nil {
		formatter = sharedFormatter(b.timestampFormat)
	}

	return &logrus.Logger{
		Out:       b.opt.stdout(),
		Formatter: formatter,
		Hooks:     b.levelHooks(),
		Level:     b.opt.level(),
		ExitFunc:  os.Exit,
	}
}
