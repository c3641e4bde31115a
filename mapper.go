package restmapper

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// mapperState Mapper 生命周期状态
type mapperState int

const (
	stateEmitting  mapperState = iota // 已创建，可以写入
	stateFinalized                    // Dump 之后，不能再写入
)

var nullFragment = []byte("null")

// iRelation 关系容器
// 负责嵌套记录与 JSON 片段之间的转换
type iRelation interface {
	IDirty
	ToJSON(opts Options) (string, error)
	FromJSON(text string, opts Options) error
}

// Mapper 记录字段与 JSON 之间的映射
// 一个实例只服务一次序列化或一次反序列化过程，不可并发使用。
// 输入文档与输出文档相互独立，可以在同一个实例上先读后写。
//
// 序列化:
//
//	m := restmapper.NewMapper(restmapper.Options{})
//	_ = m.Set("name", &user.Name)
//	_ = m.Set("email", &user.Email)
//	text, err := m.Dump()
//
// 反序列化:
//
//	m, err := restmapper.NewMapperFrom(body, restmapper.Options{IgnoreMissingFields: true})
//	if err != nil {
//	    return err
//	}
//	err = m.Get("name", &user.Name)
type Mapper struct {
	emitter *Emitter
	parser  *Parser
	opts    Options
	state   mapperState
	wrapped bool // 构造时输出了对象开始，Dump 时需要闭合
	written bool // 单字段模式下已输出
	logger  ILogger
	traceId string
}

// NewMapper 创建用于输出的 Mapper
// 非单字段模式下立即输出对象开始
func NewMapper(opts Options) *Mapper {
	m := &Mapper{
		emitter: NewEmitter(),
		parser:  NewParser(),
		opts:    opts,
		logger:  takeLogger(),
	}

	if !opts.OutputSingleField {
		m.emitter.MapOpen()
		m.wrapped = true
	}

	return m
}

// NewMapperFrom 创建加载了输入文档的 Mapper
func NewMapperFrom(text string, opts Options) (*Mapper, error) {
	m := NewMapper(opts)
	if err := m.parser.Load(text); err != nil {
		m.log(logrus.DebugLevel, "load document failed: %v", err)
		return nil, err
	}

	return m, nil
}

// Options 当前映射选项
func (m *Mapper) Options() Options {
	return m.opts
}

// SetOptions 替换映射选项
// 对象开始与结束的配对在构造时已经确定，不受影响
func (m *Mapper) SetOptions(opts Options) {
	m.opts = opts
}

// FieldFilter 单字段模式下输出的字段名
func (m *Mapper) FieldFilter() string {
	return m.opts.FieldFilter
}

// SetFieldFilter 设置单字段模式下输出的字段名
func (m *Mapper) SetFieldFilter(key string) {
	m.opts.FieldFilter = key
}

// Parser 输入文档
func (m *Mapper) Parser() *Parser {
	return m.parser
}

// TraceId 本次映射过程的跟踪ID，首次调用时生成
func (m *Mapper) TraceId() string {
	if m.traceId == "" {
		m.traceId = generateTraceId()
	}

	return m.traceId
}

// Finalized 是否已经 Dump
func (m *Mapper) Finalized() bool {
	return m.state == stateFinalized
}

// Dump 结束输出并返回 JSON 文本
// 必须是输出过程的最后一次调用，重复调用返回 ErrMapperFinalized
func (m *Mapper) Dump() (string, error) {
	if err := m.writable("dump"); err != nil {
		return "", err
	}

	if m.wrapped {
		m.emitter.MapClose()
	}

	m.state = stateFinalized
	return m.emitter.Dump()
}

// GetRaw 获取字段的原始 JSON 文本
func (m *Mapper) GetRaw(key string) (string, error) {
	node, err := m.parser.Find(key)
	if err != nil {
		return "", err
	}

	return node.Dump(), nil
}

// SetRaw 原样输出字段的 JSON 片段
// 关系字段通过它把嵌套记录的输出拼接进来
func (m *Mapper) SetRaw(key string, fragment string) error {
	if err := m.writable(key); err != nil {
		return err
	}

	if !m.selects(key) {
		return nil
	}

	if err := m.begin(key); err != nil {
		return err
	}

	m.emitter.Raw(fragment)
	return nil
}

// Get 从输入文档读取字段
func (m *Mapper) Get(key string, field IField) error {
	if field == nil {
		return fieldErr(key, errors.Wrap(ErrUnsupportedField, "nil field"))
	}

	return field.mapGet(m, key)
}

// Set 输出字段
func (m *Mapper) Set(key string, field IField) error {
	if field == nil {
		return fieldErr(key, errors.Wrap(ErrUnsupportedField, "nil field"))
	}

	return field.mapSet(m, key)
}

// GetFields 按顺序读取全部字段，遇到错误立即返回
func (m *Mapper) GetFields(fields Fields) error {
	for _, b := range fields {
		if err := m.Get(b.Key, b.Field); err != nil {
			return err
		}
	}

	return nil
}

// SetFields 按顺序输出全部字段，遇到错误立即返回
func (m *Mapper) SetFields(fields Fields) error {
	for _, b := range fields {
		if err := m.Set(b.Key, b.Field); err != nil {
			return err
		}
	}

	return nil
}

func (m *Mapper) writable(key string) error {
	if m.state != stateFinalized {
		return nil
	}

	m.log(logrus.WarnLevel, "write %s after dump", key)
	return errors.Wrapf(ErrMapperFinalized, "write %s", key)
}

// selects 单字段模式下只有过滤的字段可以输出
func (m *Mapper) selects(key string) bool {
	return !m.opts.OutputSingleField || m.opts.FieldFilter == key
}

// begin 开始输出一个字段，非单字段模式下输出字段名
func (m *Mapper) begin(key string) error {
	if !m.opts.OutputSingleField {
		m.emitter.Key(key)
		return nil
	}

	if m.written {
		return fieldErr(key, errors.WithStack(ErrFieldAlreadyWritten))
	}

	m.written = true
	return nil
}

// readCell 读取标量字段
// assign 只在值非 null 时调用，负责类型转换并写入字段
func (m *Mapper) readCell(key string, c ICell, assign func(node Node) error) error {
	if m.parser.Exists(key) {
		node, err := m.parser.Find(key)
		if err != nil {
			return err
		}

		if node.IsNull() {
			c.Clear(true)
		} else if err = assign(node); err != nil {
			return err
		}
	} else if !m.opts.IgnoreMissingFields {
		m.log(logrus.DebugLevel, "field %s not found", key)
		return notFound(key)
	}

	if m.opts.TouchFields {
		c.Touch()
	}

	return nil
}

// writeCell 输出通用字段和时间字段
// 值先编码再输出字段名，编码失败时不输出任何内容并保留修改标记
func (m *Mapper) writeCell(key string, c ICell, encode func() ([]byte, error)) error {
	if err := m.writable(key); err != nil {
		return err
	}

	if !m.selects(key) {
		return nil
	}

	if !m.opts.IgnoreDirtyFlag && !c.IsDirty() {
		m.log(logrus.TraceLevel, "skip clean field %s", key)
		return nil
	}

	fragment := nullFragment
	if !c.IsNull() {
		var err error
		if fragment, err = encode(); err != nil {
			m.log(logrus.DebugLevel, "encode field %s failed: %v", key, err)
			return invalidValue(key, err)
		}
	}

	if err := m.begin(key); err != nil {
		return err
	}

	m.emitter.Raw(string(fragment))

	if !m.opts.KeepFieldsDirty {
		c.Clean()
	}

	return nil
}

// writePrimary 输出主键
// 只有开启 IncludePrimaryKey 且主键非空时输出
func (m *Mapper) writePrimary(key string, p *Primary) error {
	if err := m.writable(key); err != nil {
		return err
	}

	if !m.selects(key) {
		return nil
	}

	if !m.opts.IncludePrimaryKey || p.IsNull() {
		return nil
	}

	if err := m.begin(key); err != nil {
		return err
	}

	m.emitter.Int(p.Get())

	if !m.opts.KeepFieldsDirty {
		p.Clean()
	}

	return nil
}

// readRelation 读取关系字段
// 字段不存在或为空时不做任何修改
func (m *Mapper) readRelation(key string, r iRelation) error {
	if m.parser.Empty(key) {
		return nil
	}

	fragment, err := m.GetRaw(key)
	if err != nil {
		return err
	}

	m.log(logrus.TraceLevel, "hydrate relation %s", key)
	if err = r.FromJSON(fragment, m.opts.relationRead()); err != nil {
		return errors.WithMessagef(err, "relation %s", key)
	}

	return nil
}

// writeRelation 输出关系字段
func (m *Mapper) writeRelation(key string, r iRelation) error {
	if err := m.writable(key); err != nil {
		return err
	}

	if !m.selects(key) {
		return nil
	}

	if !m.opts.IgnoreDirtyFlag && !r.IsDirty() {
		m.log(logrus.TraceLevel, "skip clean relation %s", key)
		return nil
	}

	fragment, err := r.ToJSON(m.opts.relationWrite())
	if err != nil {
		return errors.WithMessagef(err, "relation %s", key)
	}

	if err = m.SetRaw(key, fragment); err != nil {
		return err
	}

	if !m.opts.KeepFieldsDirty {
		r.Clean()
	}

	return nil
}

type levelChecker interface {
	Enabled(level logrus.Level) bool
}

// log 记录映射过程日志，级别未开启时不生成跟踪ID
func (m *Mapper) log(level logrus.Level, format string, args ...interface{}) {
	if checker, ok := m.logger.(levelChecker); ok && !checker.Enabled(level) {
		return
	}

	message := NewLoggerMessage().
		WithLocation("mapper").
		WithTraceId(m.TraceId()).
		WithMessage(format, args...)

	switch level {
	case logrus.TraceLevel:
		m.logger.Trace(message)
	case logrus.DebugLevel:
		m.logger.Debug(message)
	case logrus.InfoLevel:
		m.logger.Info(message)
	case logrus.WarnLevel:
		m.logger.Warn(message)
	default:
		m.logger.Error(message, nil)
	}
}
