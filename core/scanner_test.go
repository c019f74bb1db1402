package core

import (
	"errors"
	"strings"
	"testing"
)

func TestScanner_Basic(t *testing.T) {
	// 模拟一个简单的 DXF 片段
	dxfData := "0\nSECTION\n2\nHEADER\n0\nENDSEC\n"
	r := strings.NewReader(dxfData)
	scanner := NewScanner(r)

	expected := []Tag{
		{0, "SECTION"},
		{2, "HEADER"},
		{0, "ENDSEC"},
	}

	for i, exp := range expected {
		if !scanner.Next() {
			t.Fatalf("第 %d 步读取失败: %v", i, scanner.Err())
		}
		if scanner.LastTag.Code != exp.Code || scanner.LastTag.Value != exp.Value {
			t.Errorf("第 %d 步数据不符: 期望 %+v, 得到 %+v", i, exp, scanner.LastTag)
		}
	}
	if scanner.Next() {
		t.Errorf("期望结束, 得到 %+v", scanner.LastTag)
	}
}

func TestScanner_PeekDoesNotConsume(t *testing.T) {
	scanner := NewScanner(strings.NewReader("  5\n1F\n 10\n3.5\n"))

	tag, ok := scanner.Peek()
	if !ok || tag.Code != 5 {
		t.Fatalf("预读失败: %+v %v", tag, ok)
	}
	if !scanner.Next() || scanner.LastTag.Value != "1F" {
		t.Fatalf("预读后读取不符: %+v", scanner.LastTag)
	}
	if !scanner.Next() || scanner.LastTag.AsFloat() != 3.5 {
		t.Fatalf("第二组不符: %+v", scanner.LastTag)
	}
}

func TestScanner_FieldStopsAtEntityBoundary(t *testing.T) {
	data := " 10\n1.0\n  0\nLINE\n 20\n2.0\n"
	scanner := NewScanner(strings.NewReader(data))

	x, err := scanner.Float(10)
	if err != nil || x != 1 {
		t.Fatalf("读取 10 失败: %v %v", x, err)
	}
	if _, err = scanner.Float(20); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望 ErrNotFound, 得到 %v", err)
	}
	// 实体边界不被消费
	if !scanner.Next() || !scanner.LastTag.Is(0, "LINE") {
		t.Fatalf("实体边界被消费: %+v", scanner.LastTag)
	}
}

func TestScanner_MalformedValue(t *testing.T) {
	scanner := NewScanner(strings.NewReader(" 40\nabc\n"))
	if _, err := scanner.Float(40); !errors.Is(err, ErrMalformedField) {
		t.Fatalf("期望 ErrMalformedField, 得到 %v", err)
	}
}

func TestScanner_NoTrailingNewline(t *testing.T) {
	scanner := NewScanner(strings.NewReader("0\r\nEOF"))
	if !scanner.Next() || scanner.LastTag.Value != "EOF" {
		t.Fatalf("末行读取失败: %+v %v", scanner.LastTag, scanner.Err())
	}
}

func TestScanner_BadGroupCode(t *testing.T) {
	scanner := NewScanner(strings.NewReader("x\nSECTION\n"))
	if scanner.Next() {
		t.Fatal("非法组码不应读取成功")
	}
	if !errors.Is(scanner.Err(), ErrMalformedField) {
		t.Fatalf("期望 ErrMalformedField, 得到 %v", scanner.Err())
	}
}

func TestScanner_Seek(t *testing.T) {
	scanner := NewScanner(strings.NewReader("0\nSECTION\n2\nENTITIES\n0\nENDSEC\n"))
	tag, err := scanner.Seek(func(t Tag) bool { return t.Is(2, "entities") })
	if err != nil || tag.Value != "ENTITIES" {
		t.Fatalf("Seek 失败: %+v %v", tag, err)
	}
	if _, err = scanner.Seek(func(t Tag) bool { return t.Is(2, "BLOCKS") }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望 ErrNotFound, 得到 %v", err)
	}
}

func TestScanner_FieldOfAndOptional(t *testing.T) {
	scanner := NewScanner(strings.NewReader("93\n4\n73\n1\n50\n30\n0\nLINE\n"))
	tag, err := scanner.FieldOf(73, 93)
	if err != nil || tag.Code != 93 {
		t.Fatalf("FieldOf 失败: %+v %v", tag, err)
	}
	if _, ok := scanner.Optional(50); ok {
		t.Fatal("下一组不是 50，不应消费")
	}
	if tag, ok := scanner.Optional(73); !ok || tag.AsInt() != 1 {
		t.Fatalf("Optional 失败: %+v", tag)
	}
	if _, err = scanner.FieldOf(11, 21); !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望 ErrNotFound, 得到 %v", err)
	}
	if tag, _ := scanner.Peek(); !tag.Is(0, "LINE") {
		t.Fatalf("实体边界被消费: %+v", tag)
	}
}
