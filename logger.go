package restmapper

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LoggerMessage 日志消息结构体
type LoggerMessage struct {
	TraceId  string                 `json:"trace_id,omitempty"` // 跟踪ID，同一次映射过程共用
	Location string                 `json:"-"`                  // 代码位置
	Message  string                 `json:"-"`                  // 日志消息
	Data     H                      `json:"data,omitempty"`     // 数据内容
	Error    string                 `json:"error,omitempty"`    // 错误信息
	Extra    map[string]interface{} `json:"extra,omitempty"`    // 扩展字段
}

// NewLoggerMessage 创建新的日志消息对象
func NewLoggerMessage() *LoggerMessage {
	return &LoggerMessage{}
}

// WithField 添加单个数据字段
func (m *LoggerMessage) WithField(key string, value interface{}) *LoggerMessage {
	if m.Data == nil {
		m.Data = make(H)
	}

	m.Data[key] = value
	return m
}

// WithFields 批量添加数据字段
func (m *LoggerMessage) WithFields(fields H) *LoggerMessage {
	if m.Data == nil {
		m.Data = make(H, len(fields))
	}

	m.Data.Merge(fields)
	return m
}

// WithError 添加错误信息
func (m *LoggerMessage) WithError(err error) *LoggerMessage {
	if err != nil {
		m.Error = err.Error()
	}
	return m
}

// WithLocation 设置代码位置
func (m *LoggerMessage) WithLocation(location string) *LoggerMessage {
	m.Location = location
	return m
}

// WithTraceId 设置跟踪ID
func (m *LoggerMessage) WithTraceId(traceId string) *LoggerMessage {
	m.TraceId = traceId
	return m
}

// WithMessage 设置日志内容
func (m *LoggerMessage) WithMessage(format string, args ...interface{}) *LoggerMessage {
	m.Message = fmt.Sprintf(format, args...)
	return m
}

// ToLogrusFields 将消息转换为logrus字段
func (m *LoggerMessage) ToLogrusFields() logrus.Fields {
	return logrus.Fields{loggerMessageKey: m}
}

// generateTraceId 生成唯一的跟踪ID
func generateTraceId() string {
	return uuid.NewString()
}

// Logger 日志记录器实现
// 基于logrus的同步日志记录器
type Logger struct {
	entry  *logrus.Logger     // logrus日志实例
	opt    *LoggerConfig      // 日志配置选项
	ctx    context.Context    // 上下文，用于控制生命周期
	cancel context.CancelFunc // 取消函数
	closed *int32             // 关闭标志，派生的记录器共享
	name   string             // 日志记录器名称
}

// NewLogger 创建新的日志记录器
func NewLogger(name string, opt *LoggerConfig) *Logger {
	ctx, cancel := context.WithCancel(context.Background())

	return &Logger{
		entry:  NewLoggerBuilder(name, opt).Make(),
		opt:    opt,
		ctx:    ctx,
		cancel: cancel,
		closed: new(int32),
		name:   name,
	}
}

// DefaultLogger 创建带默认配置的日志记录器
func DefaultLogger(name string) *Logger {
	return NewLogger(name, GetDefaultLoggerConfig())
}

// WithContext 设置上下文
// 返回新实例，上下文取消后不再记录日志
func (l *Logger) WithContext(ctx context.Context) ILogger {
	if ctx == nil {
		return l
	}

	childCtx, cancel := context.WithCancel(ctx)

	return &Logger{
		entry:  l.entry,
		opt:    l.opt,
		ctx:    childCtx,
		cancel: cancel,
		closed: l.closed,
		name:   l.name,
	}
}

// Close 关闭日志记录器
func (l *Logger) Close() error {
	if !atomic.CompareAndSwapInt32(l.closed, 0, 1) {
		return nil
	}

	l.cancel()
	return nil
}

// IsClosed 检查日志记录器是否已关闭
func (l *Logger) IsClosed() bool {
	return atomic.LoadInt32(l.closed) == 1
}

// Enabled 指定级别是否会被记录
func (l *Logger) Enabled(level logrus.Level) bool {
	return l.entry != nil && l.entry.IsLevelEnabled(level)
}

// logMessage 通用日志记录处理
func (l *Logger) logMessage(level logrus.Level, message *LoggerMessage) {
	if l.IsClosed() || l.entry == nil {
		return
	}

	select {
	case <-l.ctx.Done():
		return
	default:
	}

	entry := l.entry.WithFields(message.ToLogrusFields())
	entry.Log(level, message.Message)
}

// Info 记录信息级别日志
func (l *Logger) Info(message *LoggerMessage) {
	l.logMessage(logrus.InfoLevel, message)
}

// Trace 记录跟踪级别日志
func (l *Logger) Trace(message *LoggerMessage) {
	l.logMessage(logrus.TraceLevel, message)
}

// Debug 记录调试级别日志
func (l *Logger) Debug(message *LoggerMessage) {
	l.logMessage(logrus.DebugLevel, message)
}

// Warn 记录警告级别日志
func (l *Logger) Warn(message *LoggerMessage) {
	l.logMessage(logrus.WarnLevel, message)
}

// Error 记录错误级别日志
func (l *Logger) Error(message *LoggerMessage, err error) {
	if err != nil && message.Error == "" {
		message.Error = err.Error()
	}
	l.logMessage(logrus.ErrorLevel, message)
}

// Infof 记录信息级别的格式化日志
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(NewLoggerMessage().WithMessage(format, args...))
}

// Tracef 记录跟踪级别的格式化日志
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Trace(NewLoggerMessage().WithMessage(format, args...))
}

// Debugf 记录调试级别的格式化日志
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(NewLoggerMessage().WithMessage(format, args...))
}

// Warnf 记录警告级别的格式化日志
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Warn(NewLoggerMessage().WithMessage(format, args...))
}

// Errorf 记录错误级别的格式化日志
func (l *Logger) Errorf(err error, format string, args ...interface{}) {
	l.Error(NewLoggerMessage().WithMessage(format, args...), err)
}

var (
	_logger   ILogger
	_loggerMu sync.RWMutex
)

// InjectLogger 替换包内使用的日志记录器
// 传入 nil 恢复为默认记录器
func InjectLogger(logger ILogger) {
	_loggerMu.Lock()
	defer _loggerMu.Unlock()

	_logger = logger
}

// takeLogger 获取包内使用的日志记录器，首次调用时创建默认记录器
func takeLogger() ILogger {
	_loggerMu.RLock()
	logger := _logger
	_loggerMu.RUnlock()

	if logger != nil {
		return logger
	}

	_loggerMu.Lock()
	defer _loggerMu.Unlock()

	if _logger == nil {
		_logger = DefaultLogger(defaultLoggerName)
	}

	return _logger
}
