package restmapper

import (
	"strings"
	"sync"
)

// Flag 映射模式位标记
// 与 REST 客户端历史报文中使用的整数配置一一对应，位值固定不可修改
//
// 使用示例:
//
//	opts := (restmapper.IgnoreMissingFields | restmapper.TouchFields).Options()
type Flag int

const (
	IgnoreMissingFields Flag = 1 << iota // 读取时忽略文档中缺少的字段
	IncludePrimaryKey                    // 输出非空主键
	IgnoreDirtyFlag                      // 输出未修改的字段
	TouchFields                          // 读取后把字段标记为已修改
	KeepFieldsDirty                      // 输出后保留修改标记
	OutputSingleField                    // 只输出 FieldFilter 指定的单个字段
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{IgnoreMissingFields, "ignore_missing_fields"},
	{IncludePrimaryKey, "include_primary_key"},
	{IgnoreDirtyFlag, "ignore_dirty_flag"},
	{TouchFields, "touch_fields"},
	{KeepFieldsDirty, "keep_fields_dirty"},
	{OutputSingleField, "output_single_field"},
}

// Has 判断是否包含指定标记
func (f Flag) Has(flag Flag) bool {
	return f&flag == flag
}

func (f Flag) String() string {
	if f == 0 {
		return "none"
	}

	parts := make([]string, 0, len(flagNames))
	for _, item := range flagNames {
		if f.Has(item.flag) {
			parts = append(parts, item.name)
		}
	}

	return strings.Join(parts, "|")
}

// Options 转换为结构化的映射选项
func (f Flag) Options() Options {
	return Options{
		IgnoreMissingFields: f.Has(IgnoreMissingFields),
		IncludePrimaryKey:   f.Has(IncludePrimaryKey),
		IgnoreDirtyFlag:     f.Has(IgnoreDirtyFlag),
		TouchFields:         f.Has(TouchFields),
		KeepFieldsDirty:     f.Has(KeepFieldsDirty),
		OutputSingleField:   f.Has(OutputSingleField),
	}
}

// Options 映射选项
// 一次序列化或反序列化过程的字段策略，各选项相互独立，可以任意组合
type Options struct {
	IgnoreMissingFields bool   `yaml:"ignore_missing_fields" mapstructure:"ignore_missing_fields"`
	IncludePrimaryKey   bool   `yaml:"include_primary_key" mapstructure:"include_primary_key"`
	IgnoreDirtyFlag     bool   `yaml:"ignore_dirty_flag" mapstructure:"ignore_dirty_flag"`
	TouchFields         bool   `yaml:"touch_fields" mapstructure:"touch_fields"`
	KeepFieldsDirty     bool   `yaml:"keep_fields_dirty" mapstructure:"keep_fields_dirty"`
	OutputSingleField   bool   `yaml:"output_single_field" mapstructure:"output_single_field"`
	FieldFilter         string `yaml:"field_filter" mapstructure:"field_filter"` // 仅在 OutputSingleField 时生效
}

// Flags 转换为位标记，FieldFilter 不参与转换
func (o Options) Flags() (f Flag) {
	if o.IgnoreMissingFields {
		f |= IgnoreMissingFields
	}
	if o.IncludePrimaryKey {
		f |= IncludePrimaryKey
	}
	if o.IgnoreDirtyFlag {
		f |= IgnoreDirtyFlag
	}
	if o.TouchFields {
		f |= TouchFields
	}
	if o.KeepFieldsDirty {
		f |= KeepFieldsDirty
	}
	if o.OutputSingleField {
		f |= OutputSingleField
	}

	return
}

// Single 返回只输出 key 的单字段选项
func (o Options) Single(key string) Options {
	o.OutputSingleField = true
	o.FieldFilter = key
	return o
}

// relationRead 关系字段读取时使用的选项
// 嵌套记录的主键用于建立关联，总是需要
func (o Options) relationRead() Options {
	o.IncludePrimaryKey = true
	return o
}

// relationWrite 关系字段输出时使用的选项
// 嵌套记录总是整体输出，字段过滤只作用于顶层记录
func (o Options) relationWrite() Options {
	o.IncludePrimaryKey = true
	o.OutputSingleField = false
	o.FieldFilter = ""
	return o
}

var (
	defaultOptions   Options
	defaultOptionsMu sync.RWMutex
)

// InjectDefaultOptions 设置全局默认映射选项
// 包内的映射函数都接收显式的 Options，不会自动读取默认值，
// 调用方按需传入 DefaultOptions():
//
//	body, err := restmapper.ToJSON(user, restmapper.DefaultOptions())
func InjectDefaultOptions(opts Options) {
	defaultOptionsMu.Lock()
	defer defaultOptionsMu.Unlock()

	defaultOptions = opts
}

// DefaultOptions 获取全局默认映射选项
func DefaultOptions() Options {
	defaultOptionsMu.RLock()
	defer defaultOptionsMu.RUnlock()

	return defaultOptions
}
