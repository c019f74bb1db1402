package stl

import (
	"bytes"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/mesh"
)

type asciiParser struct {
	cursor *core.LineCursor
	size   int64
	meter  *core.Meter
	opts   mesh.Options
}

// loadASCII 逐层匹配 solid / facet normal / outer loop / vertex / endloop / endfacet / endsolid，
// 每个 solid 生成一个对象
func loadASCII(data []byte, opts mesh.Options, meter *core.Meter) (mesh.Objects, error) {
	p := &asciiParser{
		cursor: core.NewLineCursor(bytes.NewReader(data)),
		size:   max(int64(len(data)), 1),
		meter:  meter,
		opts:   opts,
	}

	var objs mesh.Objects
	for {
		line, err := p.next()
		if err != nil {
			if errors.Is(err, core.ErrEndOfInput) {
				return objs, nil
			}
			return nil, err
		}

		index := strings.Index(line, "solid")
		if index < 0 {
			continue
		}

		faces, err := p.solid()
		if err != nil {
			return nil, err
		}
		name := strings.TrimSpace(line[index+len("solid"):])
		objs = append(objs, finish(name, faces, opts, meter)...)
	}
}

func (p *asciiParser) next() (string, error) {
	line, err := p.cursor.Next()
	if err == nil {
		p.meter.Tick(10 + int(70*p.cursor.Offset()/p.size))
	}
	return line, err
}

// solid 读到 endsolid 或输入结束
func (p *asciiParser) solid() ([]mesh.Face3D, error) {
	var faces []mesh.Face3D
	for {
		line, err := p.next()
		if err != nil {
			return faces, ignoreEnd(err)
		}

		if index := strings.Index(line, "facet normal"); index >= 0 {
			var normal v3.Vec
			if fields := strings.Fields(line[index:]); len(fields) == 5 {
				if normal, err = parseVec(fields[2:]); err != nil {
					return nil, errors.WithMessagef(err, "line %d", p.cursor.Line())
				}
			}
			if faces, err = p.facet(faces, normal); err != nil {
				return nil, err
			}
			continue
		}

		if strings.Contains(line, "endsolid") {
			return faces, nil
		}
	}
}

// facet 读到 endfacet，outer loop 中恰好三个顶点时生成一个面
func (p *asciiParser) facet(faces []mesh.Face3D, normal v3.Vec) ([]mesh.Face3D, error) {
	for {
		line, err := p.next()
		if err != nil {
			return faces, ignoreEnd(err)
		}

		if strings.Contains(line, "outer loop") {
			var vertices []mesh.Vertex3D
			for {
				line, err = p.next()
				if err != nil {
					return faces, ignoreEnd(err)
				}
				if index := strings.Index(line, "vertex"); index >= 0 {
					if fields := strings.Fields(line[index:]); len(fields) == 4 {
						position, err := parseVec(fields[1:])
						if err != nil {
							return nil, errors.WithMessagef(err, "line %d", p.cursor.Line())
						}
						vertices = append(vertices, mesh.Vertex3D{Position: position, Normal: normal})
					}
				}
				if strings.Contains(line, "endloop") {
					break
				}
			}

			if len(vertices) == 3 {
				faces = append(faces, mesh.Face3D{
					Vertices: [3]mesh.Vertex3D{vertices[0], vertices[1], vertices[2]},
					Normal:   normal,
					Fill:     mesh.DefaultFill,
				})
			} else {
				p.opts.Log().Debug("stl: facet skipped", "line", p.cursor.Line(), "vertices", len(vertices))
			}
		}

		if strings.Contains(line, "endfacet") {
			return faces, nil
		}
	}
}

func ignoreEnd(err error) error {
	if errors.Is(err, core.ErrEndOfInput) {
		return nil
	}
	return err
}
