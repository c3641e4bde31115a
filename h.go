package restmapper

// H 日志数据字段
type H map[string]interface{}

// Merge 合并字段，已有的键被覆盖
func (h H) Merge(mapping H) {
	for k, v := range mapping {
		h[k] = v
	}
}
