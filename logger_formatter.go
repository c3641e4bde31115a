package restmapper

import (
	"bytes"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	loggerMessageKey = "message"
)

var _ logrus.Formatter = (*LoggerFormatter)(nil)

// loggerFormatMessage 日志中 JSON 部分的结构
type loggerFormatMessage struct {
	TraceId string                 `json:"trace_id,omitempty"`
	Data    H                      `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Extra   map[string]interface{} `json:"extra,omitempty"`
}

// LoggerFormatter 文本加 JSON 的日志格式化器
//
// 输出格式:
//
//	2006-01-02 15:04:05.000 [debug] <mapper> (field name not found) || {"trace_id":"..."}
type LoggerFormatter struct {
	TimestampFormat string
	PrettyPrint     bool
	bufferPool      sync.Pool
}

func (f *LoggerFormatter) getBuffer() *bytes.Buffer {
	if f.bufferPool.New == nil {
		f.bufferPool.New = func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, 512))
		}
	}

	buf := f.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (f *LoggerFormatter) putBuffer(buf *bytes.Buffer) {
	f.bufferPool.Put(buf)
}

func (f *LoggerFormatter) takeMessage(entry *logrus.Entry) *LoggerMessage {
	value, ok := entry.Data[loggerMessageKey]
	if !ok {
		return nil
	}

	message, _ := value.(*LoggerMessage)
	return message
}

func (f *LoggerFormatter) makeFormatMessage(entry *logrus.Entry, message *LoggerMessage) *loggerFormatMessage {
	data := &loggerFormatMessage{}
	if message != nil {
		data.TraceId = message.TraceId
		data.Data = message.Data
		data.Error = message.Error
		data.Extra = message.Extra
	}

	// 其他 logrus 字段放入 extra
	for k, v := range entry.Data {
		if k == loggerMessageKey {
			continue
		}

		if data.Extra == nil {
			data.Extra = make(map[string]interface{}, len(entry.Data))
		}

		if _, ok := data.Extra[k]; !ok {
			data.Extra[k] = v
		}
	}

	return data
}

func (f *LoggerFormatter) makeJsonContent(data *loggerFormatMessage) ([]byte, error) {
	if !f.PrettyPrint {
		return _json.Marshal(data)
	}

	return _json.MarshalIndent(data, "", "  ")
}

// Format 实现 logrus.Formatter 接口
func (f *LoggerFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	message := f.takeMessage(entry)
	serialized, err := f.makeJsonContent(f.makeFormatMessage(entry, message))
	if err != nil {
		return nil, err
	}

	buf := f.getBuffer()
	defer f.putBuffer(buf)

	buf.WriteString(entry.Time.Format(timestampFormat))
	buf.WriteString(" [")
	buf.WriteString(entry.Level.String())
	buf.WriteString("] <")
	if message != nil {
		buf.WriteString(message.Location)
	}
	buf.WriteString("> (")
	if message != nil && message.Message != "" {
		buf.WriteString(message.Message)
	} else {
		buf.WriteString(entry.Message)
	}
	buf.WriteString(") || ")
	buf.Write(serialized)
	buf.WriteByte('\n')

	// buffer 归还后会被复用，需要复制
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())

	return result, nil
}
