package entities

import (
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/geom"
)

func init() {
	Register(KindLine, "AcDbLine", false, loadLine)
}

func loadLine(s *core.Scanner) (geom.Shape, error) {
	a, err := loadVec(s, 10, 20)
	if err != nil {
		return nil, err
	}
	b, err := loadVec(s, 11, 21)
	if err != nil {
		return nil, err
	}
	return &geom.Line{A: a, B: b}, nil
}
