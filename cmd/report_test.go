package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zooyer/cadimport"
	"github.com/zooyer/cadimport/dxf"
	"github.com/zooyer/cadimport/geom"
	"github.com/zooyer/cadimport/mesh"
)

func lineEntity(handle string, x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("0\nLINE\n5\n%s\n8\n0\n10\n%g\n20\n%g\n11\n%g\n21\n%g\n", handle, x1, y1, x2, y2)
}

func loadDrawing(t *testing.T, entities ...string) *dxf.Drawing {
	var b strings.Builder
	b.WriteString("0\nSECTION\n2\nENTITIES\n")
	for _, e := range entities {
		b.WriteString(e)
	}
	b.WriteString("0\nENDSEC\n0\nEOF\n")

	opts := dxf.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	d, err := dxf.Load(strings.NewReader(b.String()), opts, nil)
	require.NoError(t, err)
	return d
}

func TestIslands(t *testing.T) {
	shapes := []geom.Shape{
		&geom.Line{A: v2.Vec{X: 0, Y: 0}, B: v2.Vec{X: 10, Y: 0}},
		&geom.Line{A: v2.Vec{X: 15, Y: 0}, B: v2.Vec{X: 20, Y: 5}},
		&geom.Line{A: v2.Vec{X: 1000, Y: 1000}, B: v2.Vec{X: 1010, Y: 1000}},
	}

	boxes := islands(shapes, 10)
	require.Len(t, boxes, 2)
	// 上面一行在前
	assert.Equal(t, 1000.0, boxes[0].Min.X)
	assert.Equal(t, v2.Vec{X: 20, Y: 5}, boxes[1].Max)
}

func TestRowsDrawing(t *testing.T) {
	d := loadDrawing(t,
		lineEntity("A1", 0, 0, 10, 0),
		lineEntity("A2", 12, 0, 20, 0),
		lineEntity("A3", 500, 0, 510, 0),
	)

	list := rows(&cadimport.Model{Format: "dxf", Drawing: d}, 5)
	require.Len(t, list, 2)
	// 同一行按 X 从左到右
	assert.Equal(t, "group-01", list[0].Name)
	assert.Equal(t, 2, list[0].Shapes)
	assert.Equal(t, 1, list[1].Shapes)
	assert.Equal(t, 500.0, list[1].Box.Min.X)

	n := counts(d.Graph)
	assert.Equal(t, 3, n["LINE"])
}

func TestRowsMesh(t *testing.T) {
	face := mesh.Face3D{Vertices: [3]mesh.Vertex3D{
		{Position: v3.Vec{X: 0, Y: 0, Z: 0}},
		{Position: v3.Vec{X: 1, Y: 0, Z: 0}},
		{Position: v3.Vec{X: 0, Y: 1, Z: 2}},
	}}
	model := &cadimport.Model{Format: "stl", Objects: mesh.Objects{
		{Name: "part", Faces: []mesh.Face3D{face}},
		{Faces: []mesh.Face3D{face, face}, Edges: []mesh.Line3D{{}}},
	}}

	list := rows(model, 0)
	require.Len(t, list, 2)
	assert.Equal(t, "part", list[0].Name)
	assert.Equal(t, "object-02", list[1].Name)
	assert.Equal(t, 2, list[1].Faces)
	assert.Equal(t, 1, list[1].Edges)
	assert.Equal(t, 2.0, list[0].Box.Max.Z)

	var out bytes.Buffer
	summary(&out, model, dxf.DefaultOptions())
	assert.Contains(t, out.String(), "对象: 2, 面: 3, 边: 1")
}

func TestWriteCSV(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "report.csv")
	err := writeCSV(filename, []Row{
		{Name: "group-01", Shapes: 3},
		{Name: "part", Faces: 12, Edges: 18},
		{Name: `门,窗 "A"`, Faces: 1},
	})
	require.NoError(t, err)

	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "名称", records[0][0])
	assert.Equal(t, []string{"group-01", "3", "0", "0"}, records[1][:4])
	assert.Equal(t, []string{"part", "0", "12", "18"}, records[2][:4])
	assert.Equal(t, `门,窗 "A"`, records[3][0], "名称中的逗号和引号被转义")
	assert.Len(t, records[3], 10)
}
