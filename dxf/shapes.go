package dxf

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/samber/lo"
	"github.com/zooyer/cadimport/geom"
)

func shapesOf[T geom.Shape](d *Drawing) []T {
	return lo.FilterMap(d.Shapes(), func(shape geom.Shape, _ int) (T, bool) {
		t, ok := shape.(T)
		return t, ok
	})
}

func (d *Drawing) Points() []*geom.Point {
	return shapesOf[*geom.Point](d)
}

func (d *Drawing) Lines() []*geom.Line {
	return shapesOf[*geom.Line](d)
}

func (d *Drawing) Circles() []*geom.Circle {
	return shapesOf[*geom.Circle](d)
}

func (d *Drawing) Ellipses() []*geom.Ellipse {
	return shapesOf[*geom.Ellipse](d)
}

func (d *Drawing) Arcs() []*geom.Arc {
	return shapesOf[*geom.Arc](d)
}

// Polylines 多段线与样条
func (d *Drawing) Polylines() []*geom.Curve {
	return shapesOf[*geom.Curve](d)
}

func (d *Drawing) Polygons() []*geom.Polygon {
	return shapesOf[*geom.Polygon](d)
}

func (d *Drawing) Texts() []*geom.Text {
	return shapesOf[*geom.Text](d)
}

// Curves 把所有描边图形展开为折线，样式随之复制
func (d *Drawing) Curves() []*geom.Curve {
	return lo.FilterMap(d.Shapes(), func(shape geom.Shape, _ int) (*geom.Curve, bool) {
		var points []v2.Vec
		switch s := shape.(type) {
		case *geom.Line:
			points = []v2.Vec{s.A, s.B}
		case *geom.Circle:
			points = s.Contour
		case *geom.Ellipse:
			points = s.Contour
		case *geom.Arc:
			points = s.Contour
		case *geom.Curve:
			points = s.Vertices
		default:
			return nil, false
		}
		curve := geom.NewCurve(append([]v2.Vec(nil), points...))
		curve.Style = *shape.Paint()
		return curve, true
	})
}
