package restmapper

const (
	defaultConfigType = "yaml"
)

var _ IConfigOption = (*ConfigOption)(nil)

// IConfigOption 配置文件读取选项
type IConfigOption interface {
	IsEnvRewrite() bool
	TakeConfigName() string
	TakeConfigType() string
	TakeConfigPaths() []string
}

// ConfigOption 配置文件读取选项
type ConfigOption struct {
	EnvRewrite  bool     // 允许环境变量覆盖，mapper.touch_fields 对应 MAPPER_TOUCH_FIELDS
	ConfigName  string   // 配置文件名，不含扩展名
	ConfigType  string   // 默认yaml
	ConfigPaths []string // 查找目录
}

func (o ConfigOption) IsEnvRewrite() bool {
	return o.EnvRewrite
}

func (o ConfigOption) TakeConfigName() string {
	return o.ConfigName
}

func (o ConfigOption) TakeConfigType() string {
	if o.ConfigType == "" {
		return defaultConfigType
	}

	return o.ConfigType
}

func (o ConfigOption) TakeConfigPaths() []string {
	return o.ConfigPaths
}
