// Package asc 读取 3D Studio ASC 文本网格，一个文件可包含多个命名对象。
package asc

import (
	"bytes"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/mesh"
)

// 标签
const (
	labelObject   = "Named object:"
	labelVertices = "Vertices: "
	labelFaces    = "Faces: "
	labelVertex   = "Vertex list:"
	labelFace     = "Face list:"
	labelMaterial = `Material:"`
	labelSmooth   = "Smoothing"
)

func Open(filename string, opts mesh.Options, progress core.Progress) (objs mesh.Objects, err error) {
	defer func() {
		if err != nil {
			opts.Log().Warn("asc: unreadable file", "path", filename, "error", err)
		}
	}()

	if !strings.EqualFold(filepath.Ext(filename), ".asc") {
		return nil, errors.Wrapf(core.ErrFormatMismatch, "%s", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(core.ErrIO, err.Error())
	}

	defer func() {
		if e := file.Close(); e != nil && err == nil {
			err = errors.Wrap(core.ErrIO, e.Error())
		}
	}()

	return Load(file, opts, progress)
}

type parser struct {
	cursor *core.LineCursor
	meter  *core.Meter
	opts   mesh.Options
}

// Load 依次读取每个 "Named object:"，找不到下一个对象时结束
func Load(reader io.Reader, opts mesh.Options, progress core.Progress) (mesh.Objects, error) {
	meter := core.NewMeter(progress, 10)
	meter.Set(10)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(core.ErrIO, err.Error())
	}
	meter.Set(20)

	p := &parser{cursor: core.NewLineCursor(bytes.NewReader(data)), meter: meter, opts: opts}

	var objs mesh.Objects
	for {
		line, err := p.cursor.SeekContains(labelObject)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				meter.Set(90)
				meter.Set(100)
				return objs, nil
			}
			return nil, err
		}

		obj, err := p.object(objectName(line))
		if err != nil {
			return nil, errors.WithMessagef(err, "line %d", p.cursor.Line())
		}
		objs = append(objs, obj)
	}
}

// objectName 去掉引号的对象名
func objectName(line string) string {
	name := line[strings.Index(line, labelObject)+len(labelObject):]
	return strings.Trim(strings.TrimSpace(name), `"`)
}

// next 下一个非空行
func (p *parser) next() (string, error) {
	for {
		line, err := p.cursor.Next()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
}

// peek 查看下一个非空行，途经的空行被消费
func (p *parser) peek() (string, bool) {
	for {
		line, err := p.cursor.Peek()
		if err != nil {
			return "", false
		}
		if strings.TrimSpace(line) != "" {
			return line, true
		}
		_, _ = p.cursor.Next()
	}
}

func (p *parser) object(name string) (*mesh.Object3D, error) {
	header, err := p.next()
	if err != nil {
		return nil, notFound(err, "mesh header")
	}
	nVertices, nFaces, err := ParseHeader(header)
	if err != nil {
		return nil, err
	}

	var indexed mesh.Indexed
	if _, err = p.cursor.SeekContains(labelVertex); err != nil {
		return nil, err
	}
	for i := 0; i < nVertices; i++ {
		line, err := p.next()
		if err != nil {
			return nil, notFound(err, "vertex %d", i)
		}
		vertex, err := ParseVertex(line)
		if err != nil {
			return nil, err
		}
		indexed.Vertices = append(indexed.Vertices, vertex)
		p.meter.Tick(20 + 20*i/nVertices)
	}

	if _, err = p.cursor.SeekContains(labelFace); err != nil {
		return nil, err
	}
	for i := 0; i < nFaces; i++ {
		line, err := p.next()
		if err != nil {
			return nil, notFound(err, "face %d", i)
		}
		face, err := ParseFace(line, nVertices)
		if err != nil {
			return nil, err
		}

		face.Fill = mesh.DefaultFill
		if line, ok := p.peek(); ok && strings.Contains(line, labelMaterial) {
			_, _ = p.cursor.Next()
			if face.Fill, err = ParseMaterial(line); err != nil {
				return nil, err
			}
		}
		if line, ok := p.peek(); ok && strings.Contains(line, labelSmooth) {
			_, _ = p.cursor.Next()
		}

		indexed.Faces = append(indexed.Faces, face)
		p.meter.Tick(40 + 30*i/nFaces)
	}
	p.meter.Set(70)

	obj := mesh.NewObject(name, indexed, p.opts)
	p.meter.Set(80)

	return obj, nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, core.ErrEndOfInput) {
		return errors.Wrapf(core.ErrNotFound, format, args...)
	}
	return err
}

// between 取 label 之后到 end 之前的内容，end 为空或找不到时取到行尾
func between(line, label, end string) (string, error) {
	index := strings.Index(line, label)
	if index < 0 {
		return "", errors.Wrapf(core.ErrNotFound, "label %q in %q", label, line)
	}
	value := line[index+len(label):]
	if end != "" {
		if j := strings.Index(value, end); j >= 0 {
			value = value[:j]
		}
	}
	return strings.TrimSpace(value), nil
}

func atoi(line, label, end string) (int, error) {
	value, err := between(line, label, end)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(core.ErrMalformedField, "%s%q", label, value)
	}
	return i, nil
}

func atof(line, label, end string) (float64, error) {
	value, err := between(line, label, end)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Wrapf(core.ErrMalformedField, "%s%q", label, value)
	}
	return f, nil
}

// ParseHeader 解析 "Tri-mesh, Vertices: 8     Faces: 12"，数字两侧的空格数不限
func ParseHeader(line string) (vertices, faces int, err error) {
	if vertices, err = atoi(line, labelVertices, labelFaces); err != nil {
		return
	}
	if faces, err = atoi(line, labelFaces, ""); err != nil {
		return
	}
	if vertices < 0 || faces < 0 {
		err = errors.Wrapf(core.ErrMalformedField, "header %q", line)
	}
	return
}

// ParseVertex 解析 "Vertex 0:  X:-1.0     Y:2.0     Z:0.5"
func ParseVertex(line string) (v3.Vec, error) {
	x, err := atof(line, "X:", "Y:")
	if err != nil {
		return v3.Vec{}, err
	}
	y, err := atof(line, "Y:", "Z:")
	if err != nil {
		return v3.Vec{}, err
	}
	z, err := atof(line, "Z:", "U:")
	if err != nil {
		return v3.Vec{}, err
	}
	return v3.Vec{X: x, Y: y, Z: z}, nil
}

// ParseFace 解析 "Face 0:    A:0 B:2 C:3 AB:1 BC:1 CA:0"，索引必须在 [0, vertices) 内
func ParseFace(line string, vertices int) (mesh.IndexedFace, error) {
	var face mesh.IndexedFace
	labels := [...][2]string{{"A:", "B:"}, {"B:", "C:"}, {"C:", "AB:"}}
	for k, label := range labels {
		index, err := atoi(line, label[0], label[1])
		if err != nil {
			return face, err
		}
		if index < 0 || index >= vertices {
			return face, errors.Wrapf(core.ErrMalformedField, "vertex index %d out of [0, %d)", index, vertices)
		}
		face.Indices[k] = index
	}
	return face, nil
}

// ParseMaterial 解析 Material:"r255g0b0a0"，a 为透明度，存为 255-a 的不透明度
func ParseMaterial(line string) (color.RGBA, error) {
	value, err := between(line, labelMaterial, `"`)
	if err != nil {
		return color.RGBA{}, err
	}

	var rgba [4]int
	labels := [...][2]string{{"r", "g"}, {"g", "b"}, {"b", "a"}, {"a", ""}}
	for i, label := range labels {
		if rgba[i], err = atoi(value, label[0], label[1]); err != nil {
			return color.RGBA{}, err
		}
	}

	return color.RGBA{
		R: clamp(rgba[0]),
		G: clamp(rgba[1]),
		B: clamp(rgba[2]),
		A: clamp(255 - rgba[3]),
	}, nil
}

func clamp(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
