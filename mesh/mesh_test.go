package mesh

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooyer/cadimport/geom"
)

const tolerance = 1e-9

func assertVec(t *testing.T, want, got v3.Vec, msg ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, msg...)
	assert.InDelta(t, want.Y, got.Y, tolerance, msg...)
	assert.InDelta(t, want.Z, got.Z, tolerance, msg...)
}

// square 平面上的两个三角形组成的正方形
func square() Indexed {
	return Indexed{
		Vertices: []v3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Faces: []IndexedFace{
			{Indices: [3]int{0, 1, 2}, Fill: DefaultFill},
			{Indices: [3]int{0, 2, 3}, Fill: DefaultFill},
		},
	}
}

// fold 沿 X 轴折成 90° 的两个三角形
func fold() Indexed {
	return Indexed{
		Vertices: []v3.Vec{{X: 0}, {X: 1}, {X: 0.5, Y: 1}, {X: 0.5, Z: 1}},
		Faces: []IndexedFace{
			{Indices: [3]int{0, 1, 2}},
			{Indices: [3]int{1, 0, 3}},
		},
	}
}

func TestFinalizeFlat(t *testing.T) {
	faces, edges := Finalize(square(), DefaultOptions())
	require.Len(t, faces, 2)
	assertVec(t, v3.Vec{Z: 1}, faces[0].Normal, "右手定则")
	assertVec(t, v3.Vec{Z: 1}, faces[1].Vertices[2].Normal)
	assert.Equal(t, DefaultFill, faces[1].Fill)

	assert.Len(t, edges, 4, "只有四条边界边，对角线不是折边")
	assert.Equal(t, Line3D{A: v3.Vec{X: 0}, B: v3.Vec{X: 1}}, edges[0], "按首次出现的顺序和方向")
}

func TestFinalizeCrease(t *testing.T) {
	faces, edges := Finalize(fold(), DefaultOptions())
	assertVec(t, v3.Vec{Z: 1}, faces[0].Normal)
	assertVec(t, v3.Vec{Y: 1}, faces[1].Normal)
	assert.Len(t, edges, 5, "四条边界边加一条折边")

	// 阈值大于二面角时不再是折边，顶点法线取平均
	opts := DefaultOptions()
	opts.AngleLimit = 100
	faces, edges = Finalize(fold(), opts)
	assert.Len(t, edges, 4)
	assertVec(t, v3.Vec{Y: 0.7071067811865476, Z: 0.7071067811865476}, faces[0].Vertices[0].Normal)
	assertVec(t, v3.Vec{Z: 1}, faces[0].Vertices[2].Normal, "只属于一个面的顶点")

	opts.Edges, opts.VertexNormals = false, false
	faces, edges = Finalize(fold(), opts)
	assert.Nil(t, edges)
	assertVec(t, v3.Vec{Z: 1}, faces[0].Vertices[0].Normal, "关闭顶点法线时使用面法线")
}

func TestFinalizeExplicitNormal(t *testing.T) {
	in := square()
	in.Faces[0].Normal = v3.Vec{Z: -3}
	faces, _ := Finalize(in, DefaultOptions())
	assertVec(t, v3.Vec{Z: -1}, faces[0].Normal, "显式法线归一化后使用")
}

func TestWeld(t *testing.T) {
	soup := []Face3D{
		{Vertices: [3]Vertex3D{{Position: v3.Vec{X: 0}}, {Position: v3.Vec{X: 1}}, {Position: v3.Vec{X: 1, Y: 1}}}, Fill: DefaultFill},
		{Vertices: [3]Vertex3D{{Position: v3.Vec{X: 0}}, {Position: v3.Vec{X: 1, Y: 1}}, {Position: v3.Vec{Y: 1}}}, Normal: v3.Vec{Z: 1}},
	}
	indexed := Weld(soup)
	assert.Len(t, indexed.Vertices, 4)
	assert.Equal(t, [3]int{0, 2, 3}, indexed.Faces[1].Indices)
	assert.Equal(t, v3.Vec{Z: 1}, indexed.Faces[1].Normal)

	obj := NewObject("part", indexed, DefaultOptions())
	assert.Equal(t, "part", obj.Name)
	assert.Len(t, obj.Edges, 4)
	require.NotNil(t, obj.EdgeStyle.Stroke)
	assert.Equal(t, EdgeColor, *obj.EdgeStyle.Stroke)
	assert.Equal(t, 2.0, obj.EdgeStyle.Width)
}

func TestObjectsTransform(t *testing.T) {
	objs := Objects{NewObject("a", square(), DefaultOptions()), NewObject("b", fold(), DefaultOptions())}
	assert.Len(t, objs.Faces(), 4)
	assert.Len(t, objs.Edges(), 9)

	objs.Translate(v3.Vec{X: 1, Y: 2, Z: 3})
	box, ok := objs.Box()
	require.True(t, ok)
	assertVec(t, v3.Vec{X: 1, Y: 2, Z: 3}, box.Min)
	assertVec(t, v3.Vec{X: 2, Y: 3, Z: 4}, box.Max)
	assertVec(t, v3.Vec{Z: 1}, objs[0].Faces[0].Normal, "平移不改变法线")

	objs.RotateX(90)
	assertVec(t, v3.Vec{Y: -1}, objs[0].Faces[0].Normal)

	objs.MirrorZ()
	assertVec(t, v3.Vec{Y: -1}, objs[0].Faces[0].Normal)
	objs.MirrorY()
	assertVec(t, v3.Vec{Y: 1}, objs[0].Faces[0].Normal)
	face := objs[0].Faces[0]
	n := face.Vertices[1].Position.Sub(face.Vertices[0].Position).Cross(face.Vertices[2].Position.Sub(face.Vertices[0].Position))
	assert.Greater(t, n.Dot(face.Normal), 0.0, "镜像后顶点仍为逆时针")

	objs.FitCenter(10)
	box, _ = objs.Box()
	extent := box.Max.Sub(box.Min)
	assert.InDelta(t, 10, max(extent.X, extent.Y, extent.Z), tolerance)
	assertVec(t, v3.Vec{}, box.Min.Add(box.Max).MulScalar(0.5))

	style := geom.StrokeStyle(DefaultFill, 1)
	objs.SetEdgeStyle(style)
	assert.Equal(t, style, objs[1].EdgeStyle)

	var empty Objects
	empty.Fit(1)
	_, ok = empty.Box()
	assert.False(t, ok)
}

func TestObjectsScaleNormals(t *testing.T) {
	slope := Indexed{
		Vertices: []v3.Vec{{}, {X: 1}, {Y: 1, Z: 1}},
		Faces:    []IndexedFace{{Indices: [3]int{0, 1, 2}}},
	}
	objs := Objects{NewObject("slope", slope, DefaultOptions())}
	assertVec(t, v3.Vec{Y: -1, Z: 1}.MulScalar(1/math.Sqrt2), objs[0].Faces[0].Normal)

	// 非均匀缩放后法线仍垂直于面
	objs.Scale(v3.Vec{X: 1, Y: 1, Z: 2})
	face := objs[0].Faces[0]
	want := v3.Vec{Y: -2, Z: 1}.MulScalar(1 / math.Sqrt(5))
	assertVec(t, want, face.Normal)
	assertVec(t, want, face.Vertices[2].Normal)
	assert.InDelta(t, 0, face.Vertices[2].Position.Sub(face.Vertices[0].Position).Dot(face.Normal), tolerance)
}
