package geom

import (
	"math"
	"slices"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func assertVec(t *testing.T, want, got v2.Vec, msg ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, msg...)
	assert.InDelta(t, want.Y, got.Y, tolerance, msg...)
}

func TestCircleCenter(t *testing.T) {
	c, err := CircleCenter(v2.Vec{X: 0, Y: 0}, v2.Vec{X: 2, Y: 0}, v2.Vec{X: 1, Y: 1})
	require.NoError(t, err)
	assertVec(t, v2.Vec{X: 1, Y: 0}, c)

	_, err = CircleCenter(v2.Vec{}, v2.Vec{X: 1, Y: 1}, v2.Vec{X: 2, Y: 2})
	assert.ErrorIs(t, err, ErrDegenerate, "共线三点不能定圆")

	// 毫米级图纸按米绘制时坐标很小，仍能定圆
	c, err = CircleCenter(v2.Vec{X: 0, Y: 0}, v2.Vec{X: 2e-4, Y: 0}, v2.Vec{X: 1e-4, Y: 1e-4})
	require.NoError(t, err)
	assert.InDelta(t, 1e-4, c.X, 1e-12)
	assert.InDelta(t, 0, c.Y, 1e-12)
}

func TestBulgeSmallChord(t *testing.T) {
	p1, p2 := v2.Vec{X: 0, Y: 0}, v2.Vec{X: 1e-4, Y: 0}

	arc, err := BulgeArc(p1, p2, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 1e-4*(1+0.01)/0.4, arc.Radius, 1e-12)
	assert.InDelta(t, 0, arc.Contour[0].Sub(p1).Length(), 1e-12)
	assert.InDelta(t, 0, arc.Contour[len(arc.Contour)-1].Sub(p2).Length(), 1e-12)
}

func TestBulgeSemicircle(t *testing.T) {
	p1, p2 := v2.Vec{X: 0, Y: 0}, v2.Vec{X: 2, Y: 0}

	arc, err := BulgeArc(p1, p2, 1)
	require.NoError(t, err)
	assertVec(t, v2.Vec{X: 1, Y: 0}, arc.Center)
	assert.InDelta(t, 1, arc.Radius, tolerance)
	assert.InDelta(t, 180, arc.Start, tolerance)
	assert.InDelta(t, 0, arc.End, tolerance)
	assert.Len(t, arc.Contour, BulgeSegments+1)
	assertVec(t, p1, arc.Contour[0], "圆弧从 P1 出发")
	assertVec(t, v2.Vec{X: 1, Y: -1}, arc.Contour[BulgeSegments/2], "凸度 1 的弧经过 (1,-1)")
	assertVec(t, p2, arc.Contour[BulgeSegments])

	mirror, err := BulgeArc(p1, p2, -1)
	require.NoError(t, err)
	assertVec(t, v2.Vec{X: 1, Y: 0}, mirror.Center)
	assert.InDelta(t, 0, mirror.Start, tolerance)
	assert.InDelta(t, 180, mirror.End, tolerance)
	assertVec(t, p1, mirror.Contour[0], "反向凸度同样从 P1 出发")
	assertVec(t, v2.Vec{X: 1, Y: 1}, mirror.Contour[BulgeSegments/2], "凸度 -1 的弧是镜像")

	forward := NewArc(mirror.Center, mirror.Radius, mirror.Start, mirror.End, BulgeSegments).Contour
	slices.Reverse(forward)
	for i := range forward {
		assertVec(t, forward[i], mirror.Contour[i], "点序反转")
	}
	for i := range arc.Contour {
		assertVec(t, v2.Vec{X: arc.Contour[i].X, Y: -arc.Contour[i].Y}, mirror.Contour[i])
	}

	points, err := BulgePoints(p1, p2, 1)
	require.NoError(t, err)
	assert.Len(t, points, BulgeSegments-1, "去掉两个端点")

	_, err = BulgeArc(p1, p1, 1)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestNewArcWrap(t *testing.T) {
	arc := NewArc(v2.Vec{}, 2, 270, 90, ArcSegments)
	assert.Len(t, arc.Contour, ArcSegments+1)
	assertVec(t, v2.Vec{X: 0, Y: -2}, arc.Contour[0])
	assertVec(t, v2.Vec{X: 2, Y: 0}, arc.Contour[ArcSegments/2], "跨过 0° 逆时针")
	assertVec(t, v2.Vec{X: 0, Y: 2}, arc.Contour[ArcSegments])
}

func TestCircleAndEllipse(t *testing.T) {
	c := NewCircle(v2.Vec{X: 1, Y: 1}, 3)
	assert.Len(t, c.Contour, CircleSegments+1)
	assert.Equal(t, c.Contour[0], c.Contour[CircleSegments], "轮廓闭合")
	for _, p := range c.Contour {
		assert.InDelta(t, 3, p.Sub(c.Center).Length(), tolerance)
	}

	e, err := NewEllipse(v2.Vec{}, v2.Vec{X: 0, Y: 4}, 0.5)
	require.NoError(t, err)
	assertVec(t, v2.Vec{X: 0, Y: 4}, e.Contour[0])
	assertVec(t, v2.Vec{X: -2, Y: 0}, e.Contour[CircleSegments/4], "短轴在长轴逆时针 90°")

	_, err = NewEllipse(v2.Vec{}, v2.Vec{}, 0.5)
	assert.ErrorIs(t, err, ErrDegenerate)
}

func TestSpline(t *testing.T) {
	// 二次 Bezier（夹紧节点向量）
	ctrl := []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 0}}
	knots := []float64{0, 0, 0, 1, 1, 1}

	points, err := Spline2(ctrl, knots, 2, 4)
	require.NoError(t, err)
	require.Len(t, points, 5)
	assertVec(t, ctrl[0], points[0], "夹紧样条经过首控制点")
	assertVec(t, v2.Vec{X: 1, Y: 1}, points[2])
	assertVec(t, ctrl[2], points[4], "夹紧样条经过末控制点")

	// 两个区间，每区间 24 段
	ctrl = append(ctrl, v2.Vec{X: 3, Y: 2})
	points, err = Spline2(ctrl, []float64{0, 0, 0, 0.5, 1, 1, 1}, 2, SplineSegments)
	require.NoError(t, err)
	assert.Len(t, points, 2*SplineSegments+1)
	assertVec(t, v2.Vec{X: 3, Y: 2}, points[len(points)-1])

	ctrl3 := []v3.Vec{{X: 0}, {X: 1, Y: 1}, {X: 2}}
	points3, err := Spline3(ctrl3, knots, 2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, points3[1].Y, tolerance)

	_, err = Spline2(ctrl, []float64{0, 1}, 2, 4)
	assert.ErrorIs(t, err, ErrDegenerate, "节点数量不符")
	_, err = Spline2(ctrl[:3], []float64{0, 0, 1, 0.5, 1, 1}, 2, 4)
	assert.ErrorIs(t, err, ErrDegenerate, "节点递减")
}

func TestArcMirror(t *testing.T) {
	arc := NewArc(v2.Vec{}, 1, 0, 90, ArcSegments)
	arc.Transform(sdf.Scale2d(v2.Vec{X: -1, Y: 1}))
	assert.InDelta(t, 90, arc.Start, tolerance)
	assert.InDelta(t, 180, arc.End, tolerance)

	arc.Transform(sdf.Translate2d(v2.Vec{X: 1}).Mul(sdf.Scale2d(v2.Vec{X: 2, Y: 2})))
	assert.InDelta(t, 2, arc.Radius, tolerance)
	assertVec(t, v2.Vec{X: 1}, arc.Center)
}

func TestText(t *testing.T) {
	text, err := NewText("Hi\nA", 5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, text.Height)
	assert.NotEmpty(t, text.Outline)

	var top float64
	for _, p := range text.Points() {
		top = math.Max(top, p.Y)
	}
	assert.InDelta(t, 5, top, 2, "字形高度接近上升高度")

	text.Place(v2.Vec{X: 10, Y: 20}, 90)
	assertVec(t, v2.Vec{X: 10, Y: 20}, text.Origin)
	assert.InDelta(t, 90, text.Rotation, tolerance)
}
