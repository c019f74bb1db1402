package entities

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/geom"
)

func init() {
	Register(KindPoint, "AcDbPoint", false, loadPoint)
}

// loadVec 依次读取 x、y 两个组码
func loadVec(s *core.Scanner, xCode, yCode int) (v2.Vec, error) {
	x, err := s.Float(xCode)
	if err != nil {
		return v2.Vec{}, err
	}
	y, err := s.Float(yCode)
	if err != nil {
		return v2.Vec{}, err
	}
	return v2.Vec{X: x, Y: y}, nil
}

func loadPoint(s *core.Scanner) (geom.Shape, error) {
	p, err := loadVec(s, 10, 20)
	if err != nil {
		return nil, err
	}
	return &geom.Point{Position: p}, nil
}
