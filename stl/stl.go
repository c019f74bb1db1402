// Package stl 读取 ASCII 与二进制 STL 三角网格。
package stl

import (
	"bytes"
	"encoding/binary"
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

const (
	headerSize = 80
	recordSize = 50
)

// IsBinary 读满 80 字节文件头且开头不是 "solid" 时为二进制，不足 80 字节按 ASCII 处理
func IsBinary(r io.Reader) bool {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return false
	}
	return string(header[:5]) != "solid"
}

func Open(filename string, opts mesh.Options, progress core.Progress) (objs mesh.Objects, err error) {
	defer func() {
		if err != nil {
			opts.Log().Warn("stl: unreadable file", "path", filename, "error", err)
		}
	}()

	if !strings.EqualFold(filepath.Ext(filename), ".stl") {
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

// Load 读取全部输入后按文件头选择解析方式
func Load(reader io.Reader, opts mesh.Options, progress core.Progress) (mesh.Objects, error) {
	meter := core.NewMeter(progress, 10)
	meter.Set(0)

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(core.ErrIO, err.Error())
	}
	meter.Set(10)

	var objs mesh.Objects
	if IsBinary(bytes.NewReader(data)) {
		objs, err = loadBinary(data, opts, meter)
	} else {
		objs, err = loadASCII(data, opts, meter)
	}
	if err != nil {
		return nil, err
	}
	meter.Set(90)
	meter.Set(100)

	return objs, nil
}

// record 二进制 STL 的一个三角形，共 50 字节
type record struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

func vec(v [3]float32) v3.Vec {
	return v3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// loadBinary 80 字节头、三角形数量、若干 50 字节记录，读到的记录数必须与声明一致
func loadBinary(data []byte, opts mesh.Options, meter *core.Meter) (mesh.Objects, error) {
	var (
		count  uint32
		reader = bytes.NewReader(data[headerSize:])
		name   = strings.TrimSpace(strings.TrimRight(string(data[:headerSize]), "\x00"))
	)

	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrapf(core.ErrCountMismatch, "triangle count: %v", err)
	}

	faces := make([]mesh.Face3D, 0, min(int(count), len(data)/recordSize))
	for {
		var rec record
		if err := binary.Read(reader, binary.LittleEndian, &rec); err != nil {
			break
		}

		face := mesh.Face3D{Normal: vec(rec.Normal), Fill: mesh.DefaultFill}
		for k, v := range rec.Vertices {
			face.Vertices[k] = mesh.Vertex3D{Position: vec(v), Normal: face.Normal}
		}
		faces = append(faces, face)

		if count > 0 {
			meter.Tick(10 + 70*len(faces)/int(count))
		}
	}

	if len(faces) != int(count) {
		return nil, errors.Wrapf(core.ErrCountMismatch, "declared %d triangles, read %d", count, len(faces))
	}

	return finish(name, faces, opts, meter), nil
}

// finish 焊接顶点并整理网格
func finish(name string, faces []mesh.Face3D, opts mesh.Options, meter *core.Meter) mesh.Objects {
	meter.Set(80)
	return mesh.Objects{mesh.NewObject(name, mesh.Weld(faces), opts)}
}

func parseVec(fields []string) (v3.Vec, error) {
	var xyz [3]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return v3.Vec{}, errors.Wrapf(core.ErrMalformedField, "%q", field)
		}
		xyz[i] = f
	}
	return v3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
