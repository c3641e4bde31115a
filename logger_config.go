package restmapper

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// defaultLoggerName 包内日志记录器名称
	defaultLoggerName = "restmapper"

	// LogLinkPathFormat 日志软链接路径格式
	// %s: 基础路径
	// %s: 年月/日目录
	// %s: 日志名
	// %s: 日志级别
	LogLinkPathFormat = "%s/%s/%s.%s.log"

	// LogFilePathFormat 日志文件路径格式
	// %s: 基础路径
	// %%Y%%m/%%d: 年月日目录
	// %s: 日志名
	// %%H: 小时
	// %s: 日志级别
	LogFilePathFormat = "%s/%%Y%%m/%%d/%s.%%H.%s.log"
)

var (
	defaultLoggerConfig = &LoggerConfig{
		Stdout:     true,
		PrintError: true,
		Level:      "warn",
	}
	defaultLoggerConfigMu sync.RWMutex
)

// InjectLoggerConfig 设置默认日志配置
// 只影响之后创建的日志记录器
func InjectLoggerConfig(config *LoggerConfig) {
	if config == nil {
		return
	}

	defaultLoggerConfigMu.Lock()
	defer defaultLoggerConfigMu.Unlock()

	defaultLoggerConfig = config
}

// GetDefaultLoggerConfig 获取默认日志配置
func GetDefaultLoggerConfig() *LoggerConfig {
	defaultLoggerConfigMu.RLock()
	defer defaultLoggerConfigMu.RUnlock()

	return defaultLoggerConfig
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Stdout        bool   `yaml:"stdout" mapstructure:"stdout"`
	PrintError    bool   `yaml:"print_error" mapstructure:"print_error"`
	Path          string `yaml:"path" mapstructure:"path"`
	Level         string `yaml:"level" mapstructure:"level"`
	MaxAge        uint   `yaml:"max_age" mapstructure:"max_age"`               // 小时，0 表示不按时间清理
	RotationCount uint   `yaml:"rotation_count" mapstructure:"rotation_count"` // 保留的文件数量
}

func (l LoggerConfig) stdout() io.Writer {
	if l.Stdout {
		return os.Stderr
	}

	return io.Discard
}

func (l LoggerConfig) level() logrus.Level {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return logrus.WarnLevel
	}

	return level
}

// LogPathConfig 日志文件路径
type LogPathConfig struct {
	BasePath string
	Name     string
	Level    logrus.Level
	LinkPath string
	FilePath string
}

func NewLogPathConfig(basePath string, name string, level logrus.Level) *LogPathConfig {
	return &LogPathConfig{BasePath: basePath, Name: name, Level: level}
}

// Init 根据当前日期生成软链接路径和文件路径模板
func (c *LogPathConfig) Init() {
	date := time.Now()

	c.LinkPath = fmt.Sprintf(LogLinkPathFormat, c.BasePath, date.Format("200601/02"), c.Name, c.Level.String())
	c.FilePath = fmt.Sprintf(LogFilePathFormat, c.BasePath, c.Name, c.Level.String())
}
