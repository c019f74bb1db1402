package mesh

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
	"github.com/zooyer/cadimport/geom"
	"github.com/zooyer/cadimport/utils"
)

// Objects 一次解析得到的全部对象，变换作用于整体
type Objects []*Object3D

// Faces 全部对象的面
func (o Objects) Faces() []Face3D {
	return lo.FlatMap(o, func(obj *Object3D, _ int) []Face3D {
		return obj.Faces
	})
}

// Edges 全部对象的边
func (o Objects) Edges() []Line3D {
	return lo.FlatMap(o, func(obj *Object3D, _ int) []Line3D {
		return obj.Edges
	})
}

func (o Objects) SetEdgeStyle(style geom.Style) {
	for _, obj := range o {
		obj.EdgeStyle = style
	}
}

// Box 全部顶点的包围盒，没有面时 ok 为 false
func (o Objects) Box() (sdf.Box3, bool) {
	var points []v3.Vec
	for _, face := range o.Faces() {
		for _, vertex := range face.Vertices {
			points = append(points, vertex.Position)
		}
	}
	return utils.BoxOf3(points)
}

// normalTransform 法线按线性部分的逆转置变换，矩阵奇异时退化为线性部分
func normalTransform(m sdf.M44) func(v3.Vec) v3.Vec {
	if m.Determinant() == 0 {
		origin := m.MulPosition(v3.Vec{})
		return func(n v3.Vec) v3.Vec {
			return normalize(m.MulPosition(n).Sub(origin))
		}
	}

	inv := m.Inverse().Values()
	return func(n v3.Vec) v3.Vec {
		return normalize(v3.Vec{
			X: inv[0]*n.X + inv[4]*n.Y + inv[8]*n.Z,
			Y: inv[1]*n.X + inv[5]*n.Y + inv[9]*n.Z,
			Z: inv[2]*n.X + inv[6]*n.Y + inv[10]*n.Z,
		})
	}
}

// Transform 仿射变换，法线按逆转置变换后重新归一化；镜像时翻转顶点顺序保持逆时针
func (o Objects) Transform(m sdf.M44) {
	direction := normalTransform(m)
	flip := m.Determinant() < 0

	for _, obj := range o {
		for i := range obj.Faces {
			face := &obj.Faces[i]
			face.Normal = direction(face.Normal)
			for k := range face.Vertices {
				vertex := &face.Vertices[k]
				vertex.Position = m.MulPosition(vertex.Position)
				vertex.Normal = direction(vertex.Normal)
			}
			if flip {
				face.Vertices[1], face.Vertices[2] = face.Vertices[2], face.Vertices[1]
			}
		}
		for i := range obj.Edges {
			obj.Edges[i].A = m.MulPosition(obj.Edges[i].A)
			obj.Edges[i].B = m.MulPosition(obj.Edges[i].B)
		}
	}
}

func (o Objects) Translate(v v3.Vec) {
	o.Transform(sdf.Translate3d(v))
}

// RotateX 绕 X 轴旋转，单位度
func (o Objects) RotateX(deg float64) {
	o.Transform(sdf.RotateX(deg * math.Pi / 180))
}

func (o Objects) RotateY(deg float64) {
	o.Transform(sdf.RotateY(deg * math.Pi / 180))
}

func (o Objects) RotateZ(deg float64) {
	o.Transform(sdf.RotateZ(deg * math.Pi / 180))
}

func (o Objects) Scale(v v3.Vec) {
	o.Transform(sdf.Scale3d(v))
}

// MirrorX 以包围盒中心为基准翻转 X
func (o Objects) MirrorX() {
	o.mirror(v3.Vec{X: -1, Y: 1, Z: 1})
}

func (o Objects) MirrorY() {
	o.mirror(v3.Vec{X: 1, Y: -1, Z: 1})
}

func (o Objects) MirrorZ() {
	o.mirror(v3.Vec{X: 1, Y: 1, Z: -1})
}

func (o Objects) mirror(scale v3.Vec) {
	box, ok := o.Box()
	if !ok {
		return
	}
	center := box.Min.Add(box.Max).MulScalar(0.5)
	o.Transform(sdf.Translate3d(center).Mul(sdf.Scale3d(scale)).Mul(sdf.Translate3d(center.MulScalar(-1))))
}

// Fit 等比缩放使最大边长为 size，包围盒最小角保持不动
func (o Objects) Fit(size float64) {
	box, ok := o.Box()
	if !ok {
		return
	}
	extent := box.Max.Sub(box.Min)
	longest := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	if longest <= 0 {
		return
	}
	s := size / longest
	o.Transform(sdf.Translate3d(box.Min).Mul(sdf.Scale3d(v3.Vec{X: s, Y: s, Z: s})).Mul(sdf.Translate3d(box.Min.MulScalar(-1))))
}

// FitCenter 等比缩放到 size 并把包围盒中心移到原点
func (o Objects) FitCenter(size float64) {
	o.Fit(size)
	box, ok := o.Box()
	if !ok {
		return
	}
	o.Translate(box.Min.Add(box.Max).MulScalar(-0.5))
}
