package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/zooyer/golib/xmath"
)

const epsilon = 1e-9

// Shape 二维图形，只有本包内的类型实现
type Shape interface {
	// Points 图形的全部几何点，用于包围盒与预览
	Points() []v2.Vec
	// Transform 对图形做仿射变换
	Transform(m sdf.M33)
	Paint() *Style
	isShape()
}

type Point struct {
	Position v2.Vec
	Style
}

type Line struct {
	A, B v2.Vec
	Style
}

type Circle struct {
	Center  v2.Vec
	Radius  float64
	Contour []v2.Vec
	Style
}

// Ellipse Axis 为相对圆心的长轴向量，Ratio 为短轴与长轴之比
type Ellipse struct {
	Center  v2.Vec
	Axis    v2.Vec
	Ratio   float64
	Contour []v2.Vec
	Style
}

// Arc 角度为度，从 Start 逆时针扫到 End
type Arc struct {
	Center     v2.Vec
	Radius     float64
	Start, End float64
	Contour    []v2.Vec
	Style
}

// Curve 折线（多段线、样条采样结果、填充边界的边列表）
type Curve struct {
	Vertices []v2.Vec
	Style
}

// Polygon 一个或多个闭合环组成的区域
type Polygon struct {
	Loops [][]v2.Vec
	Style
}

// Text 单行或多行文字，Outline 为字形轮廓
type Text struct {
	Content  string
	Origin   v2.Vec
	Height   float64
	Rotation float64
	Outline  [][]v2.Vec
	Style
}

func (*Point) isShape()   {}
func (*Line) isShape()    {}
func (*Circle) isShape()  {}
func (*Ellipse) isShape() {}
func (*Arc) isShape()     {}
func (*Curve) isShape()   {}
func (*Polygon) isShape() {}
func (*Text) isShape()    {}

func (p *Point) Points() []v2.Vec {
	return []v2.Vec{p.Position}
}

func (p *Point) Transform(m sdf.M33) {
	p.Position = m.MulPosition(p.Position)
}

func (l *Line) Points() []v2.Vec {
	return []v2.Vec{l.A, l.B}
}

func (l *Line) Transform(m sdf.M33) {
	l.A = m.MulPosition(l.A)
	l.B = m.MulPosition(l.B)
}

func (l *Line) Length() float64 {
	return l.B.Sub(l.A).Length()
}

func (c *Circle) Points() []v2.Vec {
	return c.Contour
}

func (c *Circle) Transform(m sdf.M33) {
	c.Center = m.MulPosition(c.Center)
	c.Radius *= scaleOf(m)
	mapPoints(m, c.Contour)
}

func (e *Ellipse) Points() []v2.Vec {
	return e.Contour
}

func (e *Ellipse) Transform(m sdf.M33) {
	e.Center = m.MulPosition(e.Center)
	e.Axis = linear(m, e.Axis)
	mapPoints(m, e.Contour)
}

func (a *Arc) Points() []v2.Vec {
	return a.Contour
}

func (a *Arc) Transform(m sdf.M33) {
	center := m.MulPosition(a.Center)
	start := Angle(m.MulPosition(Polar(a.Center, a.Radius, a.Start)).Sub(center))
	end := Angle(m.MulPosition(Polar(a.Center, a.Radius, a.End)).Sub(center))
	// 镜像后扫掠方向反转
	if det(m) < 0 {
		start, end = end, start
	}
	a.Center, a.Start, a.End = center, start, end
	a.Radius *= scaleOf(m)
	mapPoints(m, a.Contour)
}

// NewCurve 由点列创建折线
func NewCurve(points []v2.Vec) *Curve {
	return &Curve{Vertices: points}
}

func (c *Curve) Points() []v2.Vec {
	return c.Vertices
}

func (c *Curve) Transform(m sdf.M33) {
	mapPoints(m, c.Vertices)
}

// Closed 首尾点重合
func (c *Curve) Closed() bool {
	n := len(c.Vertices)
	return n > 2 && c.Vertices[0].Sub(c.Vertices[n-1]).Length() <= epsilon
}

func (p *Polygon) Points() []v2.Vec {
	var points []v2.Vec
	for _, loop := range p.Loops {
		points = append(points, loop...)
	}
	return points
}

func (p *Polygon) Transform(m sdf.M33) {
	for _, loop := range p.Loops {
		mapPoints(m, loop)
	}
}

func (t *Text) Points() []v2.Vec {
	points := []v2.Vec{t.Origin}
	for _, contour := range t.Outline {
		points = append(points, contour...)
	}
	return points
}

func (t *Text) Transform(m sdf.M33) {
	t.Origin = m.MulPosition(t.Origin)
	t.Height *= scaleOf(m)
	t.Rotation = normalize(t.Rotation + Angle(linear(m, v2.Vec{X: 1})))
	for _, contour := range t.Outline {
		mapPoints(m, contour)
	}
}

// Angle 向量的极角，单位度，范围 [0, 360)
func Angle(v v2.Vec) float64 {
	return normalize(math.Atan2(v.Y, v.X) * 180 / math.Pi)
}

// Polar 以 center 为圆心、radius 为半径、deg 为极角的点
func Polar(center v2.Vec, radius, deg float64) v2.Vec {
	rad := deg * math.Pi / 180
	return v2.Vec{X: center.X + radius*math.Cos(rad), Y: center.Y + radius*math.Sin(rad)}
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if xmath.Equal(deg, 360, epsilon) {
		deg = 0
	}
	return deg
}

func mapPoints(m sdf.M33, points []v2.Vec) {
	for i := range points {
		points[i] = m.MulPosition(points[i])
	}
}

// linear 只取矩阵的线性部分作用于向量
func linear(m sdf.M33, v v2.Vec) v2.Vec {
	return m.MulPosition(v).Sub(m.MulPosition(v2.Vec{}))
}

func det(m sdf.M33) float64 {
	x, y := linear(m, v2.Vec{X: 1}), linear(m, v2.Vec{Y: 1})
	return x.X*y.Y - x.Y*y.X
}

// scaleOf 变换的等效均匀缩放
func scaleOf(m sdf.M33) float64 {
	return math.Sqrt(math.Abs(det(m)))
}
