package restmapper

import (
	"bytes"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Parser 输入文档
// 把一个 JSON 对象拆成 key -> 原始片段，字段值按需解码
type Parser struct {
	fields map[string]jsoniter.RawMessage
	loaded bool
}

// NewParser 创建空的输入文档
func NewParser() *Parser {
	return &Parser{}
}

// Load 加载 JSON 对象文本
// 顶层不是对象时返回 ErrInvalidDocument，包括 null
func (p *Parser) Load(text string) error {
	if kind := _json.Get([]byte(text)).ValueType(); kind != jsoniter.ObjectValue {
		return errors.Wrapf(ErrInvalidDocument, "top level is not an object: %s", valueTypeName(kind))
	}

	fields := make(map[string]jsoniter.RawMessage)
	if err := _json.UnmarshalFromString(text, &fields); err != nil {
		return errors.Wrapf(ErrInvalidDocument, "%v", err)
	}

	p.fields = fields
	p.loaded = true
	return nil
}

func valueTypeName(kind jsoniter.ValueType) string {
	switch kind {
	case jsoniter.NilValue:
		return "null"
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	}

	return "invalid"
}

// Loaded 是否已加载文档
func (p *Parser) Loaded() bool {
	return p.loaded
}

// Exists 字段是否存在，值为 null 也算存在
func (p *Parser) Exists(key string) bool {
	_, ok := p.fields[key]
	return ok
}

// Empty 字段不存在，或值为 null、空对象、空数组
func (p *Parser) Empty(key string) bool {
	raw, ok := p.fields[key]
	if !ok {
		return true
	}

	return Node{key: key, raw: raw}.IsEmpty()
}

// Find 查找字段
func (p *Parser) Find(key string) (Node, error) {
	if !p.loaded {
		return Node{}, errors.Wrapf(ErrNotLoaded, "find %s", key)
	}

	raw, ok := p.fields[key]
	if !ok {
		return Node{}, notFound(key)
	}

	return Node{key: key, raw: raw}, nil
}

// Keys 返回文档中所有字段名，已排序
func (p *Parser) Keys() []string {
	keys := make([]string, 0, len(p.fields))
	for key := range p.fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

// Node 文档中的单个字段值
type Node struct {
	key string
	raw jsoniter.RawMessage
}

func (n Node) any() jsoniter.Any {
	return _json.Get(n.raw)
}

func (n Node) trimmed() []byte {
	return bytes.TrimSpace(n.raw)
}

// Key 字段名
func (n Node) Key() string {
	return n.key
}

// IsNull 值是否为 null
func (n Node) IsNull() bool {
	return n.any().ValueType() == jsoniter.NilValue
}

// IsEmpty 值为 null、空对象或空数组
func (n Node) IsEmpty() bool {
	value := n.any()
	switch value.ValueType() {
	case jsoniter.NilValue, jsoniter.InvalidValue:
		return true
	case jsoniter.ObjectValue, jsoniter.ArrayValue:
		return value.Size() == 0
	}

	return false
}

// Dump 原始 JSON 文本
func (n Node) Dump() string {
	return string(n.trimmed())
}

// ToString 字符串值
// 非字符串值返回其 JSON 文本
func (n Node) ToString() (string, error) {
	raw := n.trimmed()
	if len(raw) == 0 || raw[0] != '"' {
		return string(raw), nil
	}

	var s string
	if err := _json.Unmarshal(raw, &s); err != nil {
		return "", invalidValue(n.key, err)
	}

	return s, nil
}

// ToInt 整数值
// 接受 JSON 数字以及内容为数字的字符串，带小数部分的值报错
func (n Node) ToInt() (int64, error) {
	text, err := n.ToString()
	if err != nil {
		return 0, err
	}

	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, invalidValue(n.key, err)
	}

	if f != float64(int64(f)) {
		return 0, invalidValue(n.key, errors.Errorf("%s is not an integer", text))
	}

	return int64(f), nil
}

// Decode 把值解码到 v
func (n Node) Decode(v any) error {
	if err := _json.Unmarshal(n.raw, v); err != nil {
		return invalidValue(n.key, err)
	}

	return nil
}

// Emitter 输出文档
// 基于 jsoniter.Stream 增量输出，自动处理对象内的逗号
type Emitter struct {
	stream *jsoniter.Stream
	levels []bool // 每层对象是否已有字段
}

// NewEmitter 创建输出文档
func NewEmitter() *Emitter {
	return &Emitter{
		stream: jsoniter.NewStream(_json, nil, 512),
	}
}

// MapOpen 输出对象开始
func (e *Emitter) MapOpen() {
	e.stream.WriteObjectStart()
	e.levels = append(e.levels, false)
}

// MapClose 输出对象结束
func (e *Emitter) MapClose() {
	if len(e.levels) > 0 {
		e.levels = e.levels[:len(e.levels)-1]
	}

	e.stream.WriteObjectEnd()
}

// Key 输出字段名
func (e *Emitter) Key(key string) {
	if n := len(e.levels); n > 0 {
		if e.levels[n-1] {
			e.stream.WriteMore()
		}
		e.levels[n-1] = true
	}

	e.stream.WriteObjectField(key)
}

// Value 输出任意值
// 编码错误记录在流中，由 Dump 返回
func (e *Emitter) Value(v any) {
	e.stream.WriteVal(v)
}

// String 输出字符串
func (e *Emitter) String(s string) {
	e.stream.WriteString(s)
}

// Int 输出整数
func (e *Emitter) Int(v int64) {
	e.stream.WriteInt64(v)
}

// Null 输出 null
func (e *Emitter) Null() {
	e.stream.WriteNil()
}

// Raw 原样输出 JSON 片段
func (e *Emitter) Raw(text string) {
	e.stream.WriteRaw(text)
}

// Dump 返回已输出的文本
func (e *Emitter) Dump() (string, error) {
	if e.stream.Error != nil {
		return "", errors.Wrapf(ErrInvalidValue, "emit: %v", e.stream.Error)
	}

	return string(e.stream.Buffer()), nil
}
