package restmapper

/*
# json-iterator 配置

映射层的解析与输出统一使用 json-iterator/go，与标准库 encoding/json 完全兼容。

## 配置选项
- EscapeHTML: false - 字段值原样输出，不把 < > & 转义成 < 等形式，
  REST 接口的报文保持和服务端一致
- SortMapKeys: true - 序列化 map 时对键排序，保证输出稳定，便于比较
- ValidateJsonRawMessage: true - 关系字段拼接的原始片段在序列化时校验合法性
- UseNumber: true - 解析到 interface{} 时数字使用 json.Number，避免大整数主键丢失精度

## 使用方式
- Parser 使用 Unmarshal 把文档拆成 key -> RawMessage
- Node 使用 Unmarshal 把单个值解码到 Field[T] 的目标类型
- Emitter 和 HasMany 使用 Stream 增量输出
*/

import jsoniter "github.com/json-iterator/go"

var (
	_json = jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()
)
