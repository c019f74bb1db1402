// Package preview 把图纸与网格快速渲染为 SVG，用于导入结果的预览。
package preview

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/zooyer/cadimport/dxf"
	"github.com/zooyer/cadimport/geom"
	"github.com/zooyer/cadimport/mesh"
)

const (
	margin     = 10
	background = "fill:rgb(33,40,48)"
)

// errWriter 记录第一次写入错误，之后的写入全部丢弃
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// viewport 把模型坐标映射到画布整数坐标，y 轴向上
type viewport struct {
	box           sdf.Box2
	scale         float64
	width, height int
}

func newViewport(box sdf.Box2, width int) viewport {
	size := box.Max.Sub(box.Min)
	longest := math.Max(size.X, size.Y)
	inner := float64(max(width-2*margin, 1))

	vp := viewport{box: box, width: width, scale: 1}
	if longest > 0 {
		vp.scale = inner / longest
	}
	vp.height = int(math.Ceil(size.Y*vp.scale)) + 2*margin
	return vp
}

func (vp viewport) point(p v2.Vec) (int, int) {
	x := margin + (p.X-vp.box.Min.X)*vp.scale
	y := float64(vp.height-margin) - (p.Y-vp.box.Min.Y)*vp.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (vp viewport) points(points []v2.Vec) (xs, ys []int) {
	xs, ys = make([]int, len(points)), make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = vp.point(p)
	}
	return
}

// path 多个闭合环合成一个路径，按奇偶规则填充
func (vp viewport) path(loops [][]v2.Vec) string {
	var b strings.Builder
	for _, loop := range loops {
		for i, p := range loop {
			x, y := vp.point(p)
			if i == 0 {
				fmt.Fprintf(&b, "M%d %d", x, y)
			} else {
				fmt.Fprintf(&b, " L%d %d", x, y)
			}
		}
		if len(loop) > 0 {
			b.WriteString(" Z ")
		}
	}
	return strings.TrimSpace(b.String())
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func opacity(c color.RGBA) string {
	return fmt.Sprintf("%.3g", float64(c.A)/255)
}

// styleOf 转为 SVG 样式
func styleOf(s geom.Style) string {
	var parts []string
	if s.Fill != nil {
		parts = append(parts, "fill:"+rgb(*s.Fill), "fill-opacity:"+opacity(*s.Fill), "fill-rule:evenodd")
	} else {
		parts = append(parts, "fill:none")
	}
	if s.Stroke != nil {
		parts = append(parts, "stroke:"+rgb(*s.Stroke), "stroke-opacity:"+opacity(*s.Stroke),
			fmt.Sprintf("stroke-width:%g", math.Max(s.Width, 1)))
	}
	return strings.Join(parts, ";")
}

// Drawing 渲染图纸，画布宽 width 像素，高度按比例
func Drawing(w io.Writer, d *dxf.Drawing, width int) error {
	ew := &errWriter{w: w}
	box, ok := d.Box()
	if !ok {
		box = sdf.Box2{Max: v2.Vec{X: 1, Y: 1}}
	}

	vp := newViewport(box, width)
	canvas := svg.New(ew)
	canvas.Start(vp.width, vp.height)
	canvas.Rect(0, 0, vp.width, vp.height, background)

	for _, shape := range d.Shapes() {
		style := styleOf(*shape.Paint())
		switch s := shape.(type) {
		case *geom.Point:
			x, y := vp.point(s.Position)
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if s.Stroke != nil {
				c = *s.Stroke
			}
			canvas.Circle(x, y, 2, "fill:"+rgb(c))
		case *geom.Polygon:
			canvas.Path(vp.path(s.Loops), style)
		case *geom.Text:
			canvas.Path(vp.path(s.Outline), style)
		default:
			xs, ys := vp.points(shape.Points())
			canvas.Polyline(xs, ys, style)
		}
	}

	canvas.End()
	return ew.err
}

// Mesh 渲染网格在 XY 平面上的投影，面按平均 Z 从低到高绘制，亮度取法线 Z 分量
func Mesh(w io.Writer, objs mesh.Objects, width int) error {
	ew := &errWriter{w: w}
	faces := objs.Faces()

	var box sdf.Box2
	if b3, ok := objs.Box(); ok {
		box = sdf.Box2{Min: v2.Vec{X: b3.Min.X, Y: b3.Min.Y}, Max: v2.Vec{X: b3.Max.X, Y: b3.Max.Y}}
	} else {
		box = sdf.Box2{Max: v2.Vec{X: 1, Y: 1}}
	}

	depth := func(f mesh.Face3D) float64 {
		return f.Vertices[0].Position.Z + f.Vertices[1].Position.Z + f.Vertices[2].Position.Z
	}
	slices.SortStableFunc(faces, func(a, b mesh.Face3D) int {
		switch da, db := depth(a), depth(b); {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})

	vp := newViewport(box, width)
	canvas := svg.New(ew)
	canvas.Start(vp.width, vp.height)
	canvas.Rect(0, 0, vp.width, vp.height, background)

	for _, face := range faces {
		var points []v2.Vec
		for _, vertex := range face.Vertices {
			points = append(points, v2.Vec{X: vertex.Position.X, Y: vertex.Position.Y})
		}
		light := 0.3 + 0.7*math.Abs(face.Normal.Z)
		fill := face.Fill
		fill.R, fill.G, fill.B = shade(fill.R, light), shade(fill.G, light), shade(fill.B, light)

		xs, ys := vp.points(points)
		canvas.Polygon(xs, ys, styleOf(geom.FillStyle(fill)))
	}

	for _, obj := range objs {
		style := styleOf(obj.EdgeStyle)
		for _, edge := range obj.Edges {
			x1, y1 := vp.point(v2.Vec{X: edge.A.X, Y: edge.A.Y})
			x2, y2 := vp.point(v2.Vec{X: edge.B.X, Y: edge.B.Y})
			canvas.Line(x1, y1, x2, y2, style)
		}
	}

	canvas.End()
	return ew.err
}

func shade(c uint8, light float64) uint8 {
	return uint8(math.Round(float64(c) * light))
}
