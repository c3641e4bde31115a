package restmapper

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	iso8601Zone  = "2006-01-02T15:04:05Z"
	iso8601Local = "2006-01-02T15:04:05"
)

// 可识别的时间格式，无时区的值按 UTC 处理
var timestampLayouts = []string{
	time.RFC3339Nano,
	iso8601Local,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// ParseTimestamp 解析 ISO 8601 时间文本
func ParseTimestamp(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("unrecognized timestamp %q", text)
}

var _ IField = (*Timestamp)(nil)

// Timestamp 时间字段
// 输出精确到秒的 UTC ISO 8601 文本
type Timestamp struct {
	cell
	value time.Time
}

// Get 获取时间，空值时返回零值
func (t *Timestamp) Get() time.Time {
	return t.value
}

// Set 设置时间并标记为已修改
func (t *Timestamp) Set(value time.Time) {
	t.SetValue(value, true)
}

// SetValue 设置时间，markDirty 决定是否标记为已修改
func (t *Timestamp) SetValue(value time.Time, markDirty bool) {
	t.value = value
	t.assign(markDirty)
}

// SetString 解析文本并设置时间
func (t *Timestamp) SetString(text string, markDirty bool) error {
	value, err := ParseTimestamp(text)
	if err != nil {
		return err
	}

	t.SetValue(value, markDirty)
	return nil
}

// Clear 置空
func (t *Timestamp) Clear(markDirty bool) {
	t.value = time.Time{}
	t.clear(markDirty)
}

// ToISO8601 转换为 ISO 8601 文本
// withZone 为 true 时带 UTC 标记 Z
func (t *Timestamp) ToISO8601(withZone bool) string {
	if !t.valid {
		return ""
	}

	if withZone {
		return t.value.UTC().Format(iso8601Zone)
	}

	return t.value.UTC().Format(iso8601Local)
}

func (t *Timestamp) String() string {
	if !t.valid {
		return "null"
	}

	return t.ToISO8601(true)
}

func (t *Timestamp) mapGet(m *Mapper, key string) error {
	return m.readCell(key, t, func(node Node) error {
		text, err := node.ToString()
		if err != nil {
			return err
		}

		value, err := ParseTimestamp(text)
		if err != nil {
			return invalidValue(key, err)
		}

		t.SetValue(value, true)
		return nil
	})
}

func (t *Timestamp) mapSet(m *Mapper, key string) error {
	return m.writeCell(key, t, func() ([]byte, error) {
		return _json.Marshal(t.ToISO8601(true))
	})
}
