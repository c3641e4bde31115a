package restmapper

import (
	"strconv"
)

var _ IField = (*Primary)(nil)

// Primary 主键字段
// 主键通常由服务端分配，输出只受 IncludePrimaryKey 控制，与修改标记无关
type Primary struct {
	cell
	value int64
}

// Get 获取主键，空值时返回 0
func (p *Primary) Get() int64 {
	return p.value
}

// Set 设置主键并标记为已修改
func (p *Primary) Set(value int64) {
	p.SetValue(value, true)
}

// SetValue 设置主键，markDirty 决定是否标记为已修改
func (p *Primary) SetValue(value int64, markDirty bool) {
	p.value = value
	p.assign(markDirty)
}

// Clear 置空
func (p *Primary) Clear(markDirty bool) {
	p.value = 0
	p.clear(markDirty)
}

func (p *Primary) String() string {
	if !p.valid {
		return "null"
	}

	return strconv.FormatInt(p.value, 10)
}

func (p *Primary) mapGet(m *Mapper, key string) error {
	return m.readCell(key, p, func(node Node) error {
		value, err := node.ToInt()
		if err != nil {
			return err
		}

		p.SetValue(value, true)
		return nil
	})
}

func (p *Primary) mapSet(m *Mapper, key string) error {
	return m.writePrimary(key, p)
}
