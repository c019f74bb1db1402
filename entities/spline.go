package entities

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/geom"
)

func init() {
	Register(KindSpline, "AcDbSpline", false, loadSpline)
}

// loadSpline 阶数 71、节点数 72、控制点数 73，随后是节点（40）与控制点（10/20）
func loadSpline(s *core.Scanner) (geom.Shape, error) {
	points, err := readSpline(s, 71, 72, 73)
	if err != nil {
		return nil, err
	}
	return geom.NewCurve(points), nil
}

// readSpline 按给定的阶数、节点数、控制点数组码读取样条并采样。
// 填充边界中的样条边使用 94/95/96，控制点按 z=0 的三维点求值。
func readSpline(s *core.Scanner, degreeCode, knotsCode, ctrlCode int) ([]v2.Vec, error) {
	degree, err := s.Int(degreeCode)
	if err != nil {
		return nil, err
	}
	nKnots, err := s.Int(knotsCode)
	if err != nil {
		return nil, err
	}
	nCtrl, err := s.Int(ctrlCode)
	if err != nil {
		return nil, err
	}

	knots := make([]float64, 0, capacity(nKnots))
	for i := 0; i < nKnots; i++ {
		knot, err := s.Float(40)
		if err != nil {
			return nil, err
		}
		knots = append(knots, knot)
	}

	ctrl := make([]v3.Vec, 0, capacity(nCtrl))
	for i := 0; i < nCtrl; i++ {
		p, err := loadVec(s, 10, 20)
		if err != nil {
			return nil, err
		}
		ctrl = append(ctrl, v3.Vec{X: p.X, Y: p.Y})
	}

	if degreeCode == 71 {
		flat := make([]v2.Vec, len(ctrl))
		for i, p := range ctrl {
			flat[i] = v2.Vec{X: p.X, Y: p.Y}
		}
		points, err := geom.Spline2(flat, knots, degree, geom.SplineSegments)
		if err != nil {
			return nil, degenerate(err)
		}
		return points, nil
	}

	points, err := geom.Spline3(ctrl, knots, degree, geom.SplineSegments)
	if err != nil {
		return nil, degenerate(err)
	}
	flat := make([]v2.Vec, len(points))
	for i, p := range points {
		flat[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	return flat, nil
}
