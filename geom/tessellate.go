package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/errors"
	"github.com/zooyer/golib/xmath"
)

// 离散化段数
const (
	CircleSegments = 48
	ArcSegments    = 48
	BulgeSegments  = 16
	SplineSegments = 24
)

// ErrDegenerate 几何退化（零长轴、三点共线、非法节点向量等）
var ErrDegenerate = errors.New("degenerate geometry")

// NewCircle 圆，轮廓为闭合的 48 段折线
func NewCircle(center v2.Vec, radius float64) *Circle {
	contour := make([]v2.Vec, 0, CircleSegments+1)
	for i := 0; i < CircleSegments; i++ {
		contour = append(contour, Polar(center, radius, 360*float64(i)/CircleSegments))
	}
	contour = append(contour, contour[0])

	return &Circle{Center: center, Radius: radius, Contour: contour}
}

// NewArc 圆弧，从 start 逆时针到 end（度），end 小于 start 时跨过 0°，两者相等视为整圆
func NewArc(center v2.Vec, radius, start, end float64, segments int) *Arc {
	start, end = normalize(start), normalize(end)
	sweep := end - start
	if sweep <= 0 {
		sweep += 360
	}

	contour := make([]v2.Vec, 0, segments+1)
	for i := 0; i <= segments; i++ {
		contour = append(contour, Polar(center, radius, start+sweep*float64(i)/float64(segments)))
	}

	return &Arc{Center: center, Radius: radius, Start: start, End: end, Contour: contour}
}

// NewEllipse 椭圆，axis 为相对圆心的长轴向量
func NewEllipse(center, axis v2.Vec, ratio float64) (*Ellipse, error) {
	if xmath.Equal(axis.Length(), 0, epsilon) {
		return nil, errors.Wrap(ErrDegenerate, "ellipse major axis")
	}

	minor := v2.Vec{X: -axis.Y, Y: axis.X}.MulScalar(ratio)
	contour := make([]v2.Vec, 0, CircleSegments+1)
	for i := 0; i < CircleSegments; i++ {
		t := 2 * math.Pi * float64(i) / CircleSegments
		contour = append(contour, center.Add(axis.MulScalar(math.Cos(t))).Add(minor.MulScalar(math.Sin(t))))
	}
	contour = append(contour, contour[0])

	return &Ellipse{Center: center, Axis: axis, Ratio: ratio, Contour: contour}, nil
}

// CircleCenter 过三点的圆心，三点共线时返回 ErrDegenerate。
// 共线判断的容差随三点间距的平方缩放，与图纸单位无关。
func CircleCenter(a, b, c v2.Vec) (v2.Vec, error) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	scale := max(b.Sub(a).Length(), c.Sub(a).Length(), c.Sub(b).Length())
	if scale == 0 || xmath.Equal(d, 0, epsilon*scale*scale) {
		return v2.Vec{}, errors.Wrapf(ErrDegenerate, "collinear points %v %v %v", a, b, c)
	}

	a2, b2, c2 := a.Dot(a), b.Dot(b), c.Dot(c)
	return v2.Vec{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, nil
}
