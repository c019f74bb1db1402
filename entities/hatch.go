package entities

import (
	"log/slog"
	"slices"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/geom"
)

func init() {
	Register(KindHatch, "AcDbHatch", true, loadHatch)
}

// 边界边类型（组码 72）
const (
	edgeLine    = 1
	edgeArc     = 2
	edgeEllipse = 3
	edgeSpline  = 4
)

// loadHatch 高程点 10/20、实心标志 70、环数 91，每个环以类型标志 92 开头
func loadHatch(s *core.Scanner) (geom.Shape, error) {
	if _, err := loadVec(s, 10, 20); err != nil {
		return nil, err
	}
	if _, err := s.Int(70); err != nil {
		return nil, err
	}
	count, err := s.Int(91)
	if err != nil {
		return nil, err
	}

	polygon := &geom.Polygon{}
	for i := 0; i < count; i++ {
		flag, err := s.Int(92)
		if err != nil {
			return nil, err
		}

		var loop []v2.Vec
		if flag&2 != 0 {
			loop, err = loadPolylineLoop(s)
		} else {
			loop, err = loadEdgeLoop(s)
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "loop %d", i)
		}
		polygon.Loops = append(polygon.Loops, loop)
	}

	return polygon, nil
}

// loadPolylineLoop 闭合标志 73 与顶点数 93 不分先后，随后是顶点 10/20，凸度忽略
func loadPolylineLoop(s *core.Scanner) ([]v2.Vec, error) {
	tag, err := s.FieldOf(73, 93)
	if err != nil {
		return nil, err
	}

	var closed bool
	count := tag.AsInt()
	if tag.Code == 73 {
		closed = tag.AsInt() != 0
		if count, err = s.Int(93); err != nil {
			return nil, err
		}
	} else if flag, ok := s.Optional(73); ok {
		closed = flag.AsInt() != 0
	}

	loop := make([]v2.Vec, 0, capacity(count)+1)
	for i := 0; i < count; i++ {
		p, err := loadVec(s, 10, 20)
		if err != nil {
			return nil, err
		}
		loop = append(loop, p)
	}
	if closed && len(loop) > 0 {
		loop = append(loop, loop[0])
	}

	return loop, nil
}

// loadEdgeLoop 边数 93，每条边以类型 72 开头，全部边首尾相接成一条曲线
func loadEdgeLoop(s *core.Scanner) ([]v2.Vec, error) {
	count, err := s.Int(93)
	if err != nil {
		return nil, err
	}

	var loop []v2.Vec
	for i := 0; i < count; i++ {
		kind, err := s.Int(72)
		if err != nil {
			return nil, err
		}

		var points []v2.Vec
		switch kind {
		case edgeLine:
			var a, b v2.Vec
			if a, err = loadVec(s, 10, 20); err == nil {
				b, err = loadVec(s, 11, 21)
			}
			points = []v2.Vec{a, b}
		case edgeArc:
			points, err = loadArcEdge(s)
		case edgeEllipse:
			var ellipse *geom.Ellipse
			if ellipse, err = readEllipse(s); err == nil {
				points = ellipse.Contour
			}
		case edgeSpline:
			points, err = readSpline(s, 94, 95, 96)
		default:
			slog.Debug("dxf: hatch edge skipped", "line", s.Line(), "type", kind)
			continue
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "edge %d", i)
		}
		loop = append(loop, points...)
	}

	return loop, nil
}

// loadArcEdge 圆弧边，逆时针标志 73 为 0 时角度按顺时针度量
func loadArcEdge(s *core.Scanner) ([]v2.Vec, error) {
	arc, err := readArc(s)
	if err != nil {
		return nil, err
	}
	if ccw, ok := s.Optional(73); ok && ccw.AsInt() == 0 {
		arc = geom.NewArc(arc.Center, arc.Radius, -arc.End, -arc.Start, geom.ArcSegments)
		slices.Reverse(arc.Contour)
	}
	return arc.Contour, nil
}
