package core

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// LineCursor 按行顺序读取文本，只进不退，保留一行预读
type LineCursor struct {
	reader *bufio.Reader
	err    error
	line   int
	offset int64

	peeked   bool
	peekLine string
	peekOK   bool
}

// NewLineCursor 创建行游标
func NewLineCursor(r io.Reader) *LineCursor {
	return &LineCursor{reader: bufio.NewReader(r)}
}

func (c *LineCursor) read() (string, bool) {
	if c.err != nil {
		return "", false
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			c.err = errors.Wrap(ErrIO, err.Error())
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	c.offset += int64(len(line))
	return strings.TrimRight(line, "\r\n"), true
}

// Next 返回下一行（不含换行符），输入耗尽时返回 ErrEndOfInput
func (c *LineCursor) Next() (string, error) {
	var (
		line string
		ok   bool
	)
	if c.peeked {
		c.peeked = false
		line, ok = c.peekLine, c.peekOK
	} else {
		line, ok = c.read()
	}
	if !ok {
		if c.err != nil {
			return "", c.err
		}
		return "", ErrEndOfInput
	}
	c.line++
	return line, nil
}

// Peek 查看下一行但不消费
func (c *LineCursor) Peek() (string, error) {
	if !c.peeked {
		c.peekLine, c.peekOK = c.read()
		c.peeked = true
	}
	if !c.peekOK {
		if c.err != nil {
			return "", c.err
		}
		return "", ErrEndOfInput
	}
	return c.peekLine, nil
}

// SeekContains 向前查找包含 substr 的行，途经的行全部丢弃
func (c *LineCursor) SeekContains(substr string) (string, error) {
	for {
		line, err := c.Next()
		if err != nil {
			if errors.Is(err, ErrEndOfInput) {
				return "", errors.Wrapf(ErrNotFound, "%q", substr)
			}
			return "", err
		}
		if strings.Contains(line, substr) {
			return line, nil
		}
	}
}

// Line 已消费的行号（从 1 开始）
func (c *LineCursor) Line() int {
	return c.line
}

// Offset 已从底层读取的字节数，用于估算进度
func (c *LineCursor) Offset() int64 {
	return c.offset
}
