package restmapper

import (
	"context"
)

// IDirty 可追踪修改状态的对象
// 字段与关系容器都实现此接口，Mapper 根据修改标记决定是否输出
type IDirty interface {
	// IsDirty 自上次清理后是否被修改
	IsDirty() bool

	// Touch 强制标记为已修改
	Touch()

	// Clean 清除修改标记
	Clean()
}

// ICell 类型化字段单元
// 保存一个可为空的值，以及修改标记和空值标记
//
// 使用示例:
//
//	var name restmapper.Field[string]
//	name.Set("张三")      // 标记为已修改
//	name.Clear(false)     // 置空，不改变修改标记
//	if name.IsNull() {
//	    // 处理空值
//	}
type ICell interface {
	IDirty

	// IsNull 值是否为空
	IsNull() bool

	// Clear 置空，markDirty 为 true 时同时标记为已修改
	Clear(markDirty bool)
}

// IField Mapper 可以读写的字段
// 实现集合是封闭的: Field[T]、Timestamp、Primary、HasOne、HasMany，
// 每种字段自行决定如何从文档读取以及如何输出，字段策略由 Mapper 统一执行
type IField interface {
	IDirty

	mapGet(m *Mapper, key string) error
	mapSet(m *Mapper, key string) error
}

// Binding 字段名与字段的绑定
type Binding struct {
	Key   string
	Field IField
}

// Bind 绑定字段名与字段
func Bind(key string, field IField) Binding {
	return Binding{Key: key, Field: field}
}

// Fields 有序的字段绑定列表，顺序即输出顺序
type Fields []Binding

// Keys 返回全部字段名
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, b := range f {
		keys = append(keys, b.Key)
	}

	return keys
}

// Find 按字段名查找
func (f Fields) Find(key string) (IField, bool) {
	for _, b := range f {
		if b.Key == key {
			return b.Field, true
		}
	}

	return nil, false
}

// IRecord 可映射的记录
// 记录只需要声明自己的字段，序列化和反序列化由 ToJSON/FromJSON 完成
//
// 使用示例:
//
//	type User struct {
//	    ID   restmapper.Primary
//	    Name restmapper.Field[string]
//	}
//
//	func (u *User) Fields() restmapper.Fields {
//	    return restmapper.Fields{
//	        restmapper.Bind("id", &u.ID),
//	        restmapper.Bind("name", &u.Name),
//	    }
//	}
type IRecord interface {
	// Fields 返回记录的字段绑定，每次调用必须返回相同的顺序
	Fields() Fields
}

// IRecordPtr 约束 *T 实现 IRecord
// 关系容器通过它创建新的嵌套记录
type IRecordPtr[T any] interface {
	*T
	IRecord
}

// ILogger 日志记录器接口
// 定义了不同级别日志的记录能力，提供结构化日志支持
//
// 使用示例:
//
//	logger := restmapper.DefaultLogger("mapper")
//	logger.Debug(restmapper.NewLoggerMessage().WithField("key", "name"))
type ILogger interface {
	// 标准日志方法 - 结构化日志
	Info(message *LoggerMessage)
	Trace(message *LoggerMessage)
	Debug(message *LoggerMessage)
	Warn(message *LoggerMessage)
	Error(message *LoggerMessage, err error)

	// 简化API - 格式化字符串
	Infof(format string, args ...interface{})
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(err error, format string, args ...interface{})

	// 资源管理
	Close() error
	IsClosed() bool

	// 上下文支持
	WithContext(ctx context.Context) ILogger
}
