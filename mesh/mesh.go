// Package mesh 三角网格对象：顶点、面、边以及网格整理（法线与折边计算）。
package mesh

import (
	"image/color"
	"log/slog"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/zooyer/cadimport/geom"
)

// 默认样式
var (
	DefaultFill = color.RGBA{R: 128, G: 218, B: 128, A: 255}
	EdgeColor   = color.RGBA{A: 255}
)

const EdgeWidth = 2

// Vertex3D 顶点位置与法线，法线在整理前为零
type Vertex3D struct {
	Position v3.Vec
	Normal   v3.Vec
}

// Face3D 三角面，顶点按逆时针排列
type Face3D struct {
	Vertices [3]Vertex3D
	Normal   v3.Vec
	Fill     color.RGBA
}

// IndexedFace 引用顶点数组的三角面，Normal 为零时由顶点计算
type IndexedFace struct {
	Indices [3]int
	Normal  v3.Vec
	Fill    color.RGBA
}

// Indexed 索引网格
type Indexed struct {
	Vertices []v3.Vec
	Faces    []IndexedFace
}

type Line3D struct {
	A, B v3.Vec
}

// Object3D 一个实体（STL 的 solid 或 ASC 的命名对象）
type Object3D struct {
	Name      string
	Faces     []Face3D
	Edges     []Line3D
	EdgeStyle geom.Style
}

// Options 网格整理参数
type Options struct {
	VertexNormals bool    `toml:"vertex_normals"`
	Edges         bool    `toml:"edges"`
	AngleLimit    float64 `toml:"angle_limit"` // 折边角阈值，单位度

	Logger *slog.Logger `toml:"-"`
}

func DefaultOptions() Options {
	return Options{
		VertexNormals: true,
		Edges:         true,
		AngleLimit:    30,
	}
}

// Log 日志输出，未设置时为 slog.Default()
func (o Options) Log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// NewObject 整理索引网格并生成对象
func NewObject(name string, indexed Indexed, opts Options) *Object3D {
	faces, edges := Finalize(indexed, opts)
	return &Object3D{
		Name:      name,
		Faces:     faces,
		Edges:     edges,
		EdgeStyle: geom.StrokeStyle(EdgeColor, EdgeWidth),
	}
}
