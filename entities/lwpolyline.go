package entities

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/geom"
)

func init() {
	Register(KindPolyline, "AcDbPolyline", false, loadPolyline)
}

// loadPolyline 顶点数（90）、标志（70，位 1 闭合），每个顶点 10/20 与可选凸度 42
func loadPolyline(s *core.Scanner) (geom.Shape, error) {
	count, err := s.Int(90)
	if err != nil {
		return nil, err
	}
	flag, err := s.Int(70)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, errors.Wrapf(core.ErrMalformedField, "polyline with %d vertices", count)
	}

	vertices := make([]v2.Vec, 0, capacity(count))
	bulges := make([]float64, 0, capacity(count))
	for i := 0; i < count; i++ {
		vertex, err := loadVec(s, 10, 20)
		if err != nil {
			return nil, err
		}
		bulge, err := loadBulge(s)
		if err != nil {
			return nil, err
		}
		vertices = append(vertices, vertex)
		bulges = append(bulges, bulge)
	}

	return geom.NewCurve(bulgeCurve(vertices, bulges, flag&1 != 0)), nil
}

// loadBulge 在下一个顶点（10）或实体结束前查找凸度（42），没有则为 0
func loadBulge(s *core.Scanner) (float64, error) {
	for {
		tag, ok := s.Peek()
		if !ok || tag.Code == 0 || tag.Code == 10 {
			return 0, nil
		}
		s.Next()
		if tag.Code == 42 {
			return tag.Float()
		}
	}
}

// bulgeCurve 展开凸度段，最后一个顶点的凸度画向首点，只有闭合时才追加首点。
// 退化的凸度段按直线处理。
func bulgeCurve(vertices []v2.Vec, bulges []float64, closed bool) []v2.Vec {
	var points []v2.Vec
	for i, vertex := range vertices {
		points = append(points, vertex)
		if bulges[i] == 0 {
			continue
		}
		next := vertices[(i+1)%len(vertices)]
		if arc, err := geom.BulgePoints(vertex, next, bulges[i]); err == nil {
			points = append(points, arc...)
		}
	}
	if closed {
		points = append(points, vertices[0])
	}
	return points
}
