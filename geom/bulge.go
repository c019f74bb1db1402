package geom

import (
	"slices"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/errors"
	"github.com/zooyer/golib/xmath"
)

// BulgeArc 由凸度 bulge 还原 p1 到 p2 之间的圆弧。
//
// 弦中点沿顺时针垂直方向偏移 bulge 倍半弦长得到弧上第三点，三点定圆。
// Start/End 描述逆时针扫掠，Contour 始终从 p1 走到 p2。
func BulgeArc(p1, p2 v2.Vec, bulge float64) (*Arc, error) {
	chord := p2.Sub(p1)
	length := chord.Length()
	if length == 0 || xmath.Equal(bulge, 0, epsilon) {
		return nil, errors.Wrapf(ErrDegenerate, "bulge %v between %v and %v", bulge, p1, p2)
	}

	mid := p1.Add(p2).MulScalar(0.5)
	perp := v2.Vec{X: chord.Y, Y: -chord.X}.MulScalar(1 / length)
	s := bulge * p1.Sub(mid).Length()
	p3 := mid.Add(perp.MulScalar(s))

	center, err := CircleCenter(p1, p2, p3)
	if err != nil {
		return nil, err
	}

	start, end := Angle(p1.Sub(center)), Angle(p2.Sub(center))
	if s < 0 {
		start, end = end, start
	}

	arc := NewArc(center, p1.Sub(center).Length(), start, end, BulgeSegments)
	if s < 0 {
		slices.Reverse(arc.Contour)
	}

	return arc, nil
}

// BulgePoints 凸度圆弧去掉两个端点后的中间点，顺序从 p1 到 p2
func BulgePoints(p1, p2 v2.Vec, bulge float64) ([]v2.Vec, error) {
	arc, err := BulgeArc(p1, p2, bulge)
	if err != nil {
		return nil, err
	}

	return slices.Clone(arc.Contour[1 : len(arc.Contour)-1]), nil
}
