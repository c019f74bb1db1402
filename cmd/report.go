package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/zooyer/cadimport"
	"github.com/zooyer/cadimport/dxf"
	"github.com/zooyer/cadimport/entities"
	"github.com/zooyer/cadimport/geom"
	"github.com/zooyer/cadimport/graph"
	"github.com/zooyer/cadimport/mesh"
	"github.com/zooyer/cadimport/utils"
	"github.com/zooyer/golib/xmath"
	"github.com/zooyer/golib/xos"
)

const rowGap = 500 // 顶边相差不超过 rowGap 视为同一行

// Row 报表中的一行：图纸的一组相邻图形，或网格的一个对象
type Row struct {
	Name   string
	Shapes int
	Faces  int
	Edges  int
	Box    sdf.Box3
}

// islands 把相距不超过 gap 的图形合并为一组，从上到下、从左到右排序
func islands(shapes []geom.Shape, gap float64) []sdf.Box2 {
	var boxes []sdf.Box2
	for _, shape := range shapes {
		if box, ok := utils.BoxOf(shape.Points()); ok {
			boxes = append(boxes, box)
		}
	}

	boxes = utils.MergeBoxes(boxes, gap)
	sort.Slice(boxes, func(i, j int) bool {
		if !xmath.Equal(boxes[i].Max.Y, boxes[j].Max.Y, rowGap) {
			return boxes[i].Max.Y > boxes[j].Max.Y
		}
		return boxes[i].Min.X < boxes[j].Min.X
	})

	return boxes
}

func box3(box sdf.Box2) sdf.Box3 {
	return sdf.Box3{
		Min: v3.Vec{X: box.Min.X, Y: box.Min.Y},
		Max: v3.Vec{X: box.Max.X, Y: box.Max.Y},
	}
}

// rows 图纸按相邻分组输出，网格按对象输出
func rows(model *cadimport.Model, gap float64) []Row {
	var result []Row

	if model.Drawing != nil {
		shapes := model.Drawing.Shapes()
		for i, box := range islands(shapes, gap) {
			count := 0
			for _, shape := range shapes {
				if b, ok := utils.BoxOf(shape.Points()); ok && utils.InBox(box, b.Min) && utils.InBox(box, b.Max) {
					count++
				}
			}
			result = append(result, Row{
				Name:   fmt.Sprintf("group-%02d", i+1),
				Shapes: count,
				Box:    box3(box),
			})
		}
		return result
	}

	for i, obj := range model.Objects {
		row := Row{
			Name:  obj.Name,
			Faces: len(obj.Faces),
			Edges: len(obj.Edges),
		}
		if row.Name == "" {
			row.Name = fmt.Sprintf("object-%02d", i+1)
		}
		if box, ok := (mesh.Objects{obj}).Box(); ok {
			row.Box = box
		}
		result = append(result, row)
	}

	return result
}

// counts 按实体种类统计图纸中的图形数量
func counts(g *graph.Graph) map[entities.Kind]int {
	result := make(map[entities.Kind]int)
	g.Walk(func(node *graph.Node) bool {
		if node.Shape != nil {
			result[entities.Kind(node.Name)]++
		}
		return true
	})
	return result
}

func renderBool(b bool) string {
	if b {
		return "✅"
	}

	return "❌"
}

// summary 打印模型概况，图纸按种类列出数量及是否启用
func summary(w io.Writer, model *cadimport.Model, opts dxf.Options) {
	if box, ok := model.Box(); ok {
		fmt.Fprintf(w, "范围: (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
			box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
	} else {
		fmt.Fprintln(w, "范围: 空")
	}

	if model.Drawing == nil {
		fmt.Fprintf(w, "对象: %d, 面: %d, 边: %d\n", len(model.Objects), len(model.Objects.Faces()), len(model.Objects.Edges()))
		return
	}

	fmt.Fprintf(w, "基点: (%.2f, %.2f)\n", model.Drawing.Base.X, model.Drawing.Base.Y)
	n := counts(model.Drawing.Graph)
	for _, kind := range entities.Kinds() {
		fmt.Fprintf(w, "  %-10s %s %d\n", kind, renderBool(opts.Enabled(kind)), n[kind])
	}
}

// csvLine 按 CSV 规则转义一行，名称中可能含逗号或引号
func csvLine(fields ...string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// writeCSV 先写表头再逐行追加
func writeCSV(filename string, rows []Row) error {
	header, err := csvLine("名称", "图形数", "面数", "边数", "最小X", "最小Y", "最小Z", "最大X", "最大Y", "最大Z")
	if err != nil {
		return err
	}
	if err = os.WriteFile(filename, header, 0644); err != nil {
		return err
	}

	for _, row := range rows {
		line, err := csvLine(
			row.Name, strconv.Itoa(row.Shapes), strconv.Itoa(row.Faces), strconv.Itoa(row.Edges),
			format(row.Box.Min.X), format(row.Box.Min.Y), format(row.Box.Min.Z),
			format(row.Box.Max.X), format(row.Box.Max.Y), format(row.Box.Max.Z),
		)
		if err != nil {
			return err
		}
		if err = xos.AppendFile(filename, line, 0644); err != nil {
			return err
		}
	}

	return nil
}
