package dxf

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/zooyer/cadimport/geom"
	"github.com/zooyer/cadimport/mesh"
)

func lift(p v2.Vec, z float64) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: z}
}

// edges 折线相邻点连成的线段
func edges(points []v2.Vec, z float64) []mesh.Line3D {
	var lines []mesh.Line3D
	for i := 1; i < len(points); i++ {
		lines = append(lines, mesh.Line3D{A: lift(points[i-1], z), B: lift(points[i], z)})
	}
	return lines
}

// Object3D 把图纸的描边图形与填充边界抬升到 z 平面，得到只有边的三维对象
func (d *Drawing) Object3D(name string, z float64) *mesh.Object3D {
	obj := &mesh.Object3D{
		Name:      name,
		EdgeStyle: geom.StrokeStyle(mesh.EdgeColor, mesh.EdgeWidth),
	}

	for _, curve := range d.Curves() {
		obj.Edges = append(obj.Edges, edges(curve.Vertices, z)...)
	}
	for _, polygon := range d.Polygons() {
		for _, loop := range polygon.Loops {
			obj.Edges = append(obj.Edges, edges(loop, z)...)
		}
	}

	return obj
}
