package restmapper

// ToJSON 把记录序列化为 JSON
//
// 使用示例:
//
//	// 创建请求只包含修改过的字段
//	body, err := restmapper.ToJSON(user, restmapper.Options{})
//
//	// 更新请求带上主键
//	body, err = restmapper.ToJSON(user, restmapper.Options{IncludePrimaryKey: true})
func ToJSON(rec IRecord, opts Options) (string, error) {
	m := NewMapper(opts)
	if err := m.SetFields(rec.Fields()); err != nil {
		return "", err
	}

	return m.Dump()
}

// FromJSON 从 JSON 对象读取记录
func FromJSON(rec IRecord, text string, opts Options) error {
	m, err := NewMapperFrom(text, opts)
	if err != nil {
		return err
	}

	return m.GetFields(rec.Fields())
}

// IsDirty 记录是否有字段被修改
func IsDirty(rec IRecord) bool {
	for _, b := range rec.Fields() {
		if b.Field.IsDirty() {
			return true
		}
	}

	return false
}

// ChangedFields 返回被修改的字段名，按字段声明顺序
func ChangedFields(rec IRecord) []string {
	var keys []string
	for _, b := range rec.Fields() {
		if b.Field.IsDirty() {
			keys = append(keys, b.Key)
		}
	}

	return keys
}

// Touch 把记录的全部字段标记为已修改
func Touch(rec IRecord) {
	for _, b := range rec.Fields() {
		b.Field.Touch()
	}
}

// Clean 清除记录全部字段的修改标记
func Clean(rec IRecord) {
	for _, b := range rec.Fields() {
		b.Field.Clean()
	}
}

// ReadField 读取单个字段的 JSON 文本
// 不受修改标记影响，也不会清除修改标记
func ReadField(rec IRecord, key string) (string, error) {
	fields := rec.Fields()
	if _, ok := fields.Find(key); !ok {
		return "", notFound(key)
	}

	opts := Options{
		IncludePrimaryKey: true,
		IgnoreDirtyFlag:   true,
		KeepFieldsDirty:   true,
	}.Single(key)

	m := NewMapper(opts)
	if err := m.SetFields(fields); err != nil {
		return "", err
	}

	text, err := m.Dump()
	if err != nil {
		return "", err
	}

	// 空主键不会输出
	if text == "" {
		return "null", nil
	}

	return text, nil
}
