package entities

import (
	"image/color"
	"strings"

	"github.com/zooyer/cadimport/core"
)

// LoadID 读取实体句柄（组码 5）
func LoadID(s *core.Scanner) (string, error) {
	tag, err := s.Field(5)
	if err != nil {
		return "", err
	}
	return tag.AsString(), nil
}

// LoadStyle 向前扫描颜色号（组码 62），先遇到子类标记 label 时放弃，返回 -1。
// 遇到下一个实体或首个坐标（组码 10）时停下且不消费。
func LoadStyle(label string, s *core.Scanner) int {
	for {
		tag, ok := s.Peek()
		if !ok || tag.Code == 0 || tag.Code == 10 {
			return -1
		}
		s.Next()
		if tag.Code == 62 {
			return tag.AsInt()
		}
		if strings.Contains(tag.Value, label) {
			return -1
		}
	}
}

// aci AutoCAD 颜色索引中用到的颜色
var aci = map[int]color.RGBA{
	0:   {255, 255, 255, 255},
	1:   {255, 0, 0, 255},
	2:   {255, 255, 0, 255},
	3:   {0, 255, 0, 255},
	4:   {0, 255, 255, 255},
	5:   {0, 0, 255, 255},
	6:   {255, 0, 255, 255},
	7:   {255, 255, 255, 255},
	8:   {128, 128, 128, 255},
	9:   {190, 190, 190, 255},
	11:  {255, 123, 123, 255},
	21:  {255, 156, 123, 255},
	31:  {255, 189, 123, 255},
	41:  {255, 222, 183, 255},
	51:  {255, 255, 123, 255},
	61:  {222, 255, 123, 255},
	71:  {189, 255, 123, 255},
	81:  {156, 255, 123, 255},
	91:  {123, 255, 123, 255},
	101: {122, 255, 156, 255},
	111: {123, 255, 189, 255},
	121: {123, 255, 222, 255},
	131: {123, 255, 255, 255},
	141: {123, 222, 255, 255},
	151: {123, 189, 255, 255},
	161: {123, 156, 255, 255},
	171: {123, 123, 255, 255},
	181: {156, 123, 255, 255},
	191: {189, 123, 255, 255},
	201: {222, 123, 255, 255},
	211: {255, 123, 255, 255},
	221: {255, 123, 222, 255},
	231: {255, 123, 189, 255},
	241: {255, 123, 156, 255},
	251: {41, 41, 41, 255},
	252: {90, 90, 90, 255},
	253: {136, 136, 136, 255},
	254: {181, 181, 181, 255},
}

// Color 颜色索引转 RGBA，未收录的索引为白色
func Color(index int) color.RGBA {
	if c, ok := aci[index]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
