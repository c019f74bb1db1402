package core

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Scanner 按 (组码, 值) 两行一组顺序读取 DXF，只进不退，保留一组预读
type Scanner struct {
	reader  *bufio.Reader
	LastTag Tag
	err     error
	line    int

	peeked  bool
	peekTag Tag
	peekOK  bool
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
	}
}

// Next 前进到下一组标签，结束或出错时返回 false
func (s *Scanner) Next() bool {
	if s.peeked {
		s.peeked = false
		if s.peekOK {
			s.LastTag = s.peekTag
		}
		return s.peekOK
	}

	tag, ok := s.read()
	if ok {
		s.LastTag = tag
	}
	return ok
}

// Peek 查看下一组标签但不消费
func (s *Scanner) Peek() (Tag, bool) {
	if !s.peeked {
		s.peekTag, s.peekOK = s.read()
		s.peeked = true
	}
	return s.peekTag, s.peekOK
}

// Line 当前已读取的行数
func (s *Scanner) Line() int {
	return s.line
}

func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) readLine() (string, bool) {
	if s.err != nil {
		return "", false
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			s.err = errors.Wrap(ErrIO, err.Error())
			return "", false
		}
		// 最后一行没有换行符
		if line == "" {
			return "", false
		}
	}
	s.line++
	return line, true
}

func (s *Scanner) read() (Tag, bool) {
	// 1. 读取 Code 行，跳过空行
	var codeStr string
	for {
		codeLine, ok := s.readLine()
		if !ok {
			return Tag{}, false
		}
		if codeStr = strings.TrimSpace(codeLine); codeStr != "" {
			break
		}
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		s.err = errors.Wrapf(ErrMalformedField, "line %d: group code %q", s.line, codeStr)
		return Tag{}, false
	}

	// 2. 读取 Value 行
	valueLine, ok := s.readLine()
	if !ok {
		// Value 行如果 EOF 也是不完整的
		if s.err == nil {
			s.err = errors.Wrapf(ErrIO, "line %d: %v", s.line, io.ErrUnexpectedEOF)
		}
		return Tag{}, false
	}

	// 去掉行尾的换行符，但保留 Value 开头的空格（DXF 规范要求）
	value := strings.TrimRight(valueLine, "\r\n")

	return Tag{Code: code, Value: value}, true
}

// failure 输入耗尽时的错误：底层读失败优先，否则为 notFound
func (s *Scanner) failure(notFound error, format string, args ...any) error {
	if s.err != nil {
		return s.err
	}
	return errors.Wrapf(notFound, format, args...)
}

// Seek 一直向前直到 match 成立，中间的标签全部丢弃
func (s *Scanner) Seek(match func(Tag) bool) (Tag, error) {
	for s.Next() {
		if match(s.LastTag) {
			return s.LastTag, nil
		}
	}
	return Tag{}, s.failure(ErrNotFound, "line %d: %v", s.line, ErrEndOfInput)
}

// Field 在当前实体内查找组码 code，遇到下一个实体（组码 0）时停下且不消费
func (s *Scanner) Field(code int) (Tag, error) {
	return s.FieldOf(code)
}

// FieldOf 在当前实体内查找 codes 中任意一个组码，边界规则同 Field
func (s *Scanner) FieldOf(codes ...int) (Tag, error) {
	for {
		tag, ok := s.Peek()
		if !ok {
			return Tag{}, s.failure(ErrNotFound, "codes %v: %v", codes, ErrEndOfInput)
		}
		if tag.Code == 0 && !slices.Contains(codes, 0) {
			return Tag{}, errors.Wrapf(ErrNotFound, "line %d: codes %v", s.line, codes)
		}
		s.Next()
		if slices.Contains(codes, tag.Code) {
			return tag, nil
		}
	}
}

// Optional 下一组标签恰好是 code 时消费并返回
func (s *Scanner) Optional(code int) (Tag, bool) {
	if tag, ok := s.Peek(); ok && tag.Code == code {
		s.Next()
		return tag, true
	}
	return Tag{}, false
}

// Float 查找组码并按浮点解析
func (s *Scanner) Float(code int) (float64, error) {
	tag, err := s.Field(code)
	if err != nil {
		return 0, err
	}
	return tag.Float()
}

// Int 查找组码并按整数解析
func (s *Scanner) Int(code int) (int, error) {
	tag, err := s.Field(code)
	if err != nil {
		return 0, err
	}
	return tag.Int()
}
