package core

import "errors"

// 错误分类，调用方通过 errors.Is 判断
var (
	ErrEndOfInput     = errors.New("end of input")
	ErrNotFound       = errors.New("not found")
	ErrMalformedField = errors.New("malformed field")
	ErrFormatMismatch = errors.New("format mismatch")
	ErrCountMismatch  = errors.New("count mismatch")
	ErrIO             = errors.New("io error")
)
