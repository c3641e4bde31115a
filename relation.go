package restmapper

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var (
	_ IField    = (*HasOne[nopRecord, *nopRecord])(nil)
	_ iRelation = (*HasMany[nopRecord, *nopRecord])(nil)
)

// nopRecord 仅用于接口断言
type nopRecord struct{}

func (*nopRecord) Fields() Fields { return nil }

func isNullText(text string) bool {
	return string(bytes.TrimSpace([]byte(text))) == "null"
}

// HasOne 一对一关系
// 嵌套记录序列化为 JSON 对象，读取时总是包含主键
//
// 使用示例:
//
//	type Post struct {
//	    ID     restmapper.Primary
//	    Author restmapper.HasOne[User, *User]
//	}
//
//	post.Author.Set(&User{})
//	post.Author.Get().Name.Set("张三")
type HasOne[T any, P IRecordPtr[T]] struct {
	item  P
	dirty bool
}

// Get 获取嵌套记录，为空时返回 nil
func (r *HasOne[T, P]) Get() P {
	return r.item
}

// Set 设置嵌套记录并标记为已修改
func (r *HasOne[T, P]) Set(item P) {
	r.item = item
	r.dirty = true
}

// Build 获取嵌套记录，为空时创建一个新的
func (r *HasOne[T, P]) Build() P {
	if r.item == nil {
		r.Set(P(new(T)))
	}

	return r.item
}

// Clear 移除嵌套记录并标记为已修改
func (r *HasOne[T, P]) Clear() {
	r.item = nil
	r.dirty = true
}

// IsNull 是否没有嵌套记录
func (r *HasOne[T, P]) IsNull() bool {
	return r.item == nil
}

// IsDirty 关系本身或嵌套记录被修改
func (r *HasOne[T, P]) IsDirty() bool {
	return r.dirty || (r.item != nil && IsDirty(r.item))
}

// Touch 标记为已修改
func (r *HasOne[T, P]) Touch() {
	r.dirty = true
}

// Clean 清除关系及嵌套记录的修改标记
func (r *HasOne[T, P]) Clean() {
	r.dirty = false
	if r.item != nil {
		Clean(r.item)
	}
}

// ToJSON 序列化嵌套记录，为空时输出 null
func (r *HasOne[T, P]) ToJSON(opts Options) (string, error) {
	if r.item == nil {
		return "null", nil
	}

	return ToJSON(r.item, opts)
}

// FromJSON 从 JSON 对象读取嵌套记录
// 已有嵌套记录时在副本上读取，成功后写回原记录，失败时原记录不变；null 移除嵌套记录
func (r *HasOne[T, P]) FromJSON(text string, opts Options) error {
	if isNullText(text) {
		r.Clear()
		return nil
	}

	next := new(T)
	if r.item != nil {
		*next = *r.item
	}

	if err := FromJSON(P(next), text, opts); err != nil {
		return err
	}

	if r.item == nil {
		r.item = P(next)
	} else {
		*r.item = *next
	}

	r.dirty = true
	return nil
}

func (r *HasOne[T, P]) mapGet(m *Mapper, key string) error {
	return m.readRelation(key, r)
}

func (r *HasOne[T, P]) mapSet(m *Mapper, key string) error {
	return m.writeRelation(key, r)
}

// HasMany 一对多关系
// 嵌套记录序列化为 JSON 数组，读取时整体替换
type HasMany[T any, P IRecordPtr[T]] struct {
	items []P
	dirty bool
}

// Items 获取全部嵌套记录
func (r *HasMany[T, P]) Items() []P {
	return r.items
}

// Len 嵌套记录数量
func (r *HasMany[T, P]) Len() int {
	return len(r.items)
}

// At 获取第 i 个嵌套记录
func (r *HasMany[T, P]) At(i int) P {
	return r.items[i]
}

// Append 追加嵌套记录并标记为已修改
func (r *HasMany[T, P]) Append(items ...P) {
	r.items = append(r.items, items...)
	r.dirty = true
}

// Build 创建并追加一个新的嵌套记录
func (r *HasMany[T, P]) Build() P {
	item := P(new(T))
	r.Append(item)
	return item
}

// Set 替换全部嵌套记录并标记为已修改
func (r *HasMany[T, P]) Set(items []P) {
	r.items = items
	r.dirty = true
}

// Clear 移除全部嵌套记录并标记为已修改
func (r *HasMany[T, P]) Clear() {
	r.items = nil
	r.dirty = true
}

// IsDirty 关系本身或任一嵌套记录被修改
func (r *HasMany[T, P]) IsDirty() bool {
	if r.dirty {
		return true
	}

	for _, item := range r.items {
		if IsDirty(item) {
			return true
		}
	}

	return false
}

// Touch 标记为已修改
func (r *HasMany[T, P]) Touch() {
	r.dirty = true
}

// Clean 清除关系及全部嵌套记录的修改标记
func (r *HasMany[T, P]) Clean() {
	r.dirty = false
	for _, item := range r.items {
		Clean(item)
	}
}

// ToJSON 序列化为 JSON 数组
func (r *HasMany[T, P]) ToJSON(opts Options) (string, error) {
	stream := jsoniter.NewStream(_json, nil, 256)
	stream.WriteArrayStart()
	for i, item := range r.items {
		text, err := ToJSON(item, opts)
		if err != nil {
			return "", errors.WithMessagef(err, "item %d", i)
		}

		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteRaw(text)
	}
	stream.WriteArrayEnd()

	if stream.Error != nil {
		return "", errors.Wrapf(ErrInvalidValue, "emit: %v", stream.Error)
	}

	return string(stream.Buffer()), nil
}

// FromJSON 从 JSON 数组读取嵌套记录
// null 视为空数组
func (r *HasMany[T, P]) FromJSON(text string, opts Options) error {
	var fragments []jsoniter.RawMessage
	if err := _json.UnmarshalFromString(text, &fragments); err != nil {
		return errors.Wrapf(ErrInvalidValue, "expect array: %v", err)
	}

	items := make([]P, 0, len(fragments))
	for i, fragment := range fragments {
		item := P(new(T))
		if err := FromJSON(item, string(fragment), opts); err != nil {
			return errors.WithMessagef(err, "item %d", i)
		}

		items = append(items, item)
	}

	r.items = items
	r.dirty = true
	return nil
}

func (r *HasMany[T, P]) mapGet(m *Mapper, key string) error {
	return m.readRelation(key, r)
}

func (r *HasMany[T, P]) mapSet(m *Mapper, key string) error {
	return m.writeRelation(key, r)
}
