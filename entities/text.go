package entities

import (
	"strings"

	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/geom"
)

func init() {
	Register(KindText, "AcDbText", true, loadText)
	Register(KindMText, "AcDbMText", true, loadMText)
}

// loadText 插入点 10/20、字高 40、内容 1，紧随其后的 50 为旋转角
func loadText(s *core.Scanner) (geom.Shape, error) {
	origin, err := loadVec(s, 10, 20)
	if err != nil {
		return nil, err
	}
	height, err := s.Float(40)
	if err != nil {
		return nil, err
	}
	content, err := s.Field(1)
	if err != nil {
		return nil, err
	}

	var rotation float64
	if tag, ok := s.Optional(50); ok {
		if rotation, err = tag.Float(); err != nil {
			return nil, err
		}
	}

	text, err := geom.NewText(content.Value, height)
	if err != nil {
		return nil, err
	}
	text.Place(origin, rotation)
	return text, nil
}

// loadMText 插入点 10/20、字高 40、参考宽度 41、对齐 71、方向 72，
// 内容由若干 3 分块加最后的 1 组成，方向向量 11/21 可选
func loadMText(s *core.Scanner) (geom.Shape, error) {
	origin, err := loadVec(s, 10, 20)
	if err != nil {
		return nil, err
	}
	height, err := s.Float(40)
	if err != nil {
		return nil, err
	}
	for _, code := range []int{41, 71, 72} {
		if _, err = s.Field(code); err != nil {
			return nil, err
		}
	}

	var content strings.Builder
	for {
		tag, err := s.FieldOf(1, 3)
		if err != nil {
			return nil, err
		}
		content.WriteString(tag.Value)
		if tag.Code == 1 {
			break
		}
	}

	var rotation float64
	if direction, err := loadVec(s, 11, 21); err == nil {
		rotation = geom.Angle(direction)
	}

	text, err := geom.NewText(strings.ReplaceAll(content.String(), `\P`, "\n"), height)
	if err != nil {
		return nil, err
	}
	text.Place(origin, rotation)
	return text, nil
}
