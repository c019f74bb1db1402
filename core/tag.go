package core

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Tag 代表 DXF 中的一组标签对
type Tag struct {
	Code  int
	Value string
}

// Float 将值转换为 float64，无法解析时返回 ErrMalformedField
func (t Tag) Float() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedField, "code %d: %q", t.Code, t.Value)
	}
	return f, nil
}

// Int 将值转换为 int，DXF 中的计数和标志有时写成浮点，先按浮点解析再截断
func (t Tag) Int() (int, error) {
	f, err := t.Float()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// AsFloat 将值转换为 float64，失败返回 0
func (t Tag) AsFloat() float64 {
	f, _ := t.Float()
	return f
}

// AsInt 将值转换为 int，失败返回 0
func (t Tag) AsInt() int {
	i, _ := t.Int()
	return i
}

// AsString 清洗字符串（去除多余空格）
func (t Tag) AsString() string {
	return strings.TrimSpace(t.Value)
}

// Is 判断是否为指定组码和值（值忽略大小写与首尾空格）
func (t Tag) Is(code int, value string) bool {
	return t.Code == code && strings.EqualFold(t.AsString(), value)
}
