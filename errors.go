package restmapper

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrFieldNotFound 字段不存在
// 读取时文档中缺少字段，且没有开启 IgnoreMissingFields
var ErrFieldNotFound = errors.New("field not found")

// ErrNotLoaded Mapper 没有加载输入文档
var ErrNotLoaded = errors.New("document not loaded")

// ErrInvalidDocument 输入不是合法的 JSON 对象
var ErrInvalidDocument = errors.New("invalid json document")

// ErrInvalidValue 字段值无法转换成目标类型
var ErrInvalidValue = errors.New("invalid field value")

// ErrMapperFinalized Dump 之后继续写入
var ErrMapperFinalized = errors.New("mapper already dumped")

// ErrFieldAlreadyWritten 单字段输出模式下重复写入
var ErrFieldAlreadyWritten = errors.New("single field already written")

// ErrUnsupportedField 字段类型不受支持
var ErrUnsupportedField = errors.New("unsupported field type")

// FieldError 携带字段名的错误
// 通过 errors.Is 可以匹配到 Err 对应的哨兵错误
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(key string, err error) error {
	return &FieldError{Key: key, Err: err}
}

// notFound 构造字段不存在错误，字段名只由 FieldError 携带
func notFound(key string) error {
	return fieldErr(key, errors.WithStack(ErrFieldNotFound))
}

// invalidValue 构造字段值错误，cause 为底层解析错误
func invalidValue(key string, cause error) error {
	if cause == nil {
		return fieldErr(key, errors.WithStack(ErrInvalidValue))
	}

	return fieldErr(key, errors.Wrapf(ErrInvalidValue, "%v", cause))
}

// FieldNotFound 判断错误是否为字段不存在，并返回字段名
//
// 使用示例:
//
//	if key, ok := restmapper.FieldNotFound(err); ok {
//	    log.Printf("服务端缺少字段: %s", key)
//	}
func FieldNotFound(err error) (key string, ok bool) {
	if !errors.Is(err, ErrFieldNotFound) {
		return "", false
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Key, true
	}

	return "", true
}
