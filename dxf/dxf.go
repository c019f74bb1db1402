// Package dxf 读取 DXF 图纸的实体段与块段，生成以句柄为键的场景图。
package dxf

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/entities"
	"github.com/zooyer/cadimport/graph"
)

// Drawing 加载完成的图纸
type Drawing struct {
	*graph.Graph
	// Base 文件中首个 10/20 坐标，非零时整张图已按它平移
	Base v2.Vec
}

type loader struct {
	data  []byte
	opts  Options
	log   *slog.Logger
	graph *graph.Graph
}

func Open(filename string, opts Options, progress core.Progress) (drawing *Drawing, err error) {
	defer func() {
		if err != nil {
			opts.logger().Warn("dxf: unreadable file", "path", filename, "error", err)
		}
	}()

	if !strings.EqualFold(filepath.Ext(filename), ".dxf") {
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

// Load 依次读取实体段、块段（可选）和全局平移，每一步重新扫描输入
func Load(reader io.Reader, opts Options, progress core.Progress) (*Drawing, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(core.ErrIO, err.Error())
	}

	var (
		meter = core.NewMeter(progress, 10)
		l     = &loader{data: data, opts: opts, log: opts.logger(), graph: graph.New()}
	)

	meter.Set(0)
	meter.Set(10)

	if err = l.loadEntities(); err != nil {
		return nil, err
	}
	meter.Set(20)

	if opts.Blocks {
		if err = l.loadBlocks(); err != nil {
			return nil, err
		}
	}
	meter.Set(60)

	drawing := &Drawing{Graph: l.graph}
	if drawing.Base, err = l.loadBase(); err != nil {
		return nil, err
	}
	if drawing.Base != (v2.Vec{}) {
		drawing.Translate(drawing.Base)
	}
	meter.Set(100)

	return drawing, nil
}

func (l *loader) scanner() *core.Scanner {
	return core.NewScanner(bytes.NewReader(l.data))
}

// section 定位到名为 name 的段
func (l *loader) section(name string) (*core.Scanner, error) {
	s := l.scanner()
	if _, err := s.Seek(func(t core.Tag) bool { return t.Is(2, name) }); err != nil {
		return nil, errors.WithMessagef(err, "section %s", name)
	}
	return s, nil
}

func (l *loader) loadEntities() error {
	s, err := l.section("ENTITIES")
	if err != nil {
		return err
	}
	return l.dispatch(s, "ENDSEC", nil)
}

// loadBlocks 每个块是以句柄为键的容器节点，块内实体读到 ENDBLK 为止
func (l *loader) loadBlocks() error {
	s, err := l.section("BLOCKS")
	if err != nil {
		return err
	}

	for {
		tag, err := s.Seek(func(t core.Tag) bool { return t.Is(0, "BLOCK") || t.Is(0, "ENDSEC") })
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil
			}
			return err
		}
		if tag.Is(0, "ENDSEC") {
			return nil
		}

		id, err := entities.LoadID(s)
		if err != nil {
			l.log.Debug("dxf: block without handle", "line", s.Line(), "error", err)
			continue
		}
		var name string
		if tag, err := s.Field(2); err == nil {
			name = tag.AsString()
		}

		node, err := l.graph.Add(nil, id, name, nil)
		if err != nil {
			l.log.Debug("dxf: block dropped", "id", id, "name", name, "error", err)
			if _, err = s.Seek(func(t core.Tag) bool { return t.Is(0, "ENDBLK") }); err != nil && !errors.Is(err, core.ErrNotFound) {
				return err
			}
			continue
		}
		if err = l.dispatch(s, "ENDBLK", node); err != nil {
			return err
		}
	}
}

// dispatch 逐个读取实体直到 terminator，出错的实体只记录日志并跳过
func (l *loader) dispatch(s *core.Scanner, terminator string, parent *graph.Node) error {
	for s.Next() {
		tag := s.LastTag
		if tag.Code != 0 {
			continue
		}
		if tag.Is(0, terminator) {
			return nil
		}

		kind, ok := entities.Lookup(tag.Value)
		if !ok || !l.opts.Enabled(kind) {
			continue
		}

		entity, err := entities.Build(kind, s)
		if err != nil {
			l.log.Debug("dxf: entity dropped", "kind", kind, "line", s.Line(), "error", err)
			continue
		}
		if _, err = l.graph.Add(parent, entity.ID, string(entity.Kind), entity.Shape); err != nil {
			l.log.Debug("dxf: entity dropped", "kind", kind, "line", s.Line(), "error", err)
		}
	}

	return s.Err()
}

// loadBase 文件中首个组码 10 与其后首个组码 20，缺失时为零
func (l *loader) loadBase() (v2.Vec, error) {
	s := l.scanner()

	x, err := s.Seek(func(t core.Tag) bool { return t.Code == 10 })
	if err != nil {
		return v2.Vec{}, ignoreNotFound(err)
	}
	y, err := s.Seek(func(t core.Tag) bool { return t.Code == 20 })
	if err != nil {
		return v2.Vec{}, ignoreNotFound(err)
	}

	var base v2.Vec
	if base.X, err = x.Float(); err != nil {
		return v2.Vec{}, err
	}
	if base.Y, err = y.Float(); err != nil {
		return v2.Vec{}, err
	}
	return base, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	return err
}
