package entities

import (
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/geom"
)

func init() {
	Register(KindCircle, "AcDbCircle", false, loadCircle)
	Register(KindArc, "AcDbCircle", false, loadArc)
	Register(KindEllipse, "AcDbEllipse", false, loadEllipse)
}

func loadCircle(s *core.Scanner) (geom.Shape, error) {
	center, err := loadVec(s, 10, 20)
	if err != nil {
		return nil, err
	}
	radius, err := s.Float(40)
	if err != nil {
		return nil, err
	}
	return geom.NewCircle(center, radius), nil
}

func loadArc(s *core.Scanner) (geom.Shape, error) {
	return readArc(s)
}

// readArc 圆心、半径、起止角（度，逆时针）
func readArc(s *core.Scanner) (*geom.Arc, error) {
	center, err := loadVec(s, 10, 20)
	if err != nil {
		return nil, err
	}
	radius, err := s.Float(40)
	if err != nil {
		return nil, err
	}
	start, err := s.Float(50)
	if err != nil {
		return nil, err
	}
	end, err := s.Float(51)
	if err != nil {
		return nil, err
	}
	return geom.NewArc(center, radius, start, end, geom.ArcSegments), nil
}

func loadEllipse(s *core.Scanner) (geom.Shape, error) {
	return readEllipse(s)
}

// readEllipse 圆心、相对长轴端点、短长轴比
func readEllipse(s *core.Scanner) (*geom.Ellipse, error) {
	center, err := loadVec(s, 10, 20)
	if err != nil {
		return nil, err
	}
	axis, err := loadVec(s, 11, 21)
	if err != nil {
		return nil, err
	}
	ratio, err := s.Float(40)
	if err != nil {
		return nil, err
	}

	ellipse, err := geom.NewEllipse(center, axis, ratio)
	if err != nil {
		return nil, degenerate(err)
	}
	return ellipse, nil
}
