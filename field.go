package restmapper

import (
	"fmt"
)

// cell 字段单元的公共状态
// 零值为空值且未修改
type cell struct {
	dirty bool
	valid bool
}

// IsDirty 是否已修改
func (c *cell) IsDirty() bool {
	return c.dirty
}

// IsNull 是否为空值
func (c *cell) IsNull() bool {
	return !c.valid
}

// Touch 强制标记为已修改
func (c *cell) Touch() {
	c.dirty = true
}

// Clean 清除修改标记
func (c *cell) Clean() {
	c.dirty = false
}

func (c *cell) assign(markDirty bool) {
	c.valid = true
	if markDirty {
		c.dirty = true
	}
}

func (c *cell) clear(markDirty bool) {
	c.valid = false
	if markDirty {
		c.dirty = true
	}
}

var _ IField = (*Field[string])(nil)

// Field 通用类型字段
// T 可以是任意 json-iterator 能解码的类型，包括实现了 encoding.TextUnmarshaler 的类型
//
// 使用示例:
//
//	type Post struct {
//	    Title restmapper.Field[string]
//	    Views restmapper.Field[int]
//	}
//
//	post.Title.Set("hello")
//	fmt.Println(post.Title.Get(), post.Title.IsDirty())
type Field[T any] struct {
	cell
	value T
}

// Get 获取值，空值时返回零值
func (f *Field[T]) Get() T {
	return f.value
}

// Ptr 获取值的指针，空值时返回 nil
func (f *Field[T]) Ptr() *T {
	if !f.valid {
		return nil
	}

	v := f.value
	return &v
}

// Set 设置值并标记为已修改
func (f *Field[T]) Set(value T) {
	f.SetValue(value, true)
}

// SetValue 设置值，markDirty 决定是否标记为已修改
func (f *Field[T]) SetValue(value T, markDirty bool) {
	f.value = value
	f.assign(markDirty)
}

// Clear 置空
func (f *Field[T]) Clear(markDirty bool) {
	var zero T
	f.value = zero
	f.clear(markDirty)
}

func (f *Field[T]) String() string {
	if !f.valid {
		return "null"
	}

	return fmt.Sprint(f.value)
}

func (f *Field[T]) mapGet(m *Mapper, key string) error {
	return m.readCell(key, f, func(node Node) error {
		var value T
		if err := node.Decode(&value); err != nil {
			return err
		}

		f.SetValue(value, true)
		return nil
	})
}

func (f *Field[T]) mapSet(m *Mapper, key string) error {
	return m.writeCell(key, f, func() ([]byte, error) {
		return _json.Marshal(f.value)
	})
}
