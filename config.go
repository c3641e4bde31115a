package restmapper

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/sylphbyte/pr"
	"gopkg.in/yaml.v3"
)

// Config 映射层配置
//
// 配置文件示例:
//
//	mapper:
//	  ignore_missing_fields: true
//	  include_primary_key: false
//	logger:
//	  stdout: true
//	  level: debug
//	  path: /var/log/app
type Config struct {
	Mapper Options      `yaml:"mapper" mapstructure:"mapper"`
	Logger LoggerConfig `yaml:"logger" mapstructure:"logger"`
}

// Apply 把配置设为全局默认值
// 日志配置立即生效，包内日志记录器按新配置重建；
// 映射选项只保存到 DefaultOptions，由调用方显式传给 NewMapper、ToJSON 等函数
func (c *Config) Apply() {
	InjectDefaultOptions(c.Mapper)

	logger := c.Logger
	InjectLoggerConfig(&logger)
	InjectLogger(NewLogger(defaultLoggerName, &logger))
}

// ParseConfigYAML 从内存中的 YAML 解析配置
func ParseConfigYAML(data []byte) (*Config, error) {
	conf := &Config{Logger: *GetDefaultLoggerConfig()}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrap(err, "parse yaml config")
	}

	return conf, nil
}

var _ IConfigParser = (*ConfigParser)(nil)

// IConfigParser 配置文件解析器
type IConfigParser interface {
	ParseFile(filepath string, conf any) (err error)
}

// NewConfigParser 创建配置文件解析器
func NewConfigParser(opt IConfigOption) IConfigParser {
	return &ConfigParser{
		opt: opt,
	}
}

// ConfigParser 基于 viper 的配置文件解析器
type ConfigParser struct {
	opt IConfigOption
}

// ParseFile 读取配置文件到 conf
// filepath 为空时按选项中的文件名和目录查找
func (c ConfigParser) ParseFile(filepath string, conf any) (err error) {
	pr.System("read config: %s\n", filepath)

	v := viper.New()
	c.withOption(v)
	c.envRewriteParse(v)

	if filepath != "" {
		v.SetConfigFile(filepath)
	}

	if err = v.ReadInConfig(); err != nil {
		pr.Error("read config %s failed: %v\n", filepath, err)
		return errors.Wrapf(err, "read config %s", filepath)
	}

	if err = v.Unmarshal(conf); err != nil {
		pr.Error("unmarshal config %s failed: %v\n", filepath, err)
		return errors.Wrapf(err, "unmarshal config %s", filepath)
	}

	return nil
}

// LoadConfig 读取配置文件并返回映射层配置
func LoadConfig(filepath string, opt IConfigOption) (*Config, error) {
	conf := &Config{Logger: *GetDefaultLoggerConfig()}
	if err := NewConfigParser(opt).ParseFile(filepath, conf); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c ConfigParser) envRewriteParse(v *viper.Viper) {
	if c.opt.IsEnvRewrite() {
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
}

func (c ConfigParser) withOption(v *viper.Viper) {
	if configName := c.opt.TakeConfigName(); configName != "" {
		v.SetConfigName(configName)
	}

	v.SetConfigType(c.opt.TakeConfigType())
	for _, path := range c.opt.TakeConfigPaths() {
		v.AddConfigPath(path)
	}
}
