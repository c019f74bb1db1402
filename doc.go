// Package cadimport 把 DXF 图纸、STL 与 ASC 网格导入为统一的内存几何模型。
//
// 格式按扩展名选择，各格式的解析在 dxf、stl、asc 包中，也可以单独使用。
package cadimport

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/asc"
	"github.com/zooyer/cadimport/config"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/dxf"
	"github.com/zooyer/cadimport/mesh"
	"github.com/zooyer/cadimport/stl"
)

// Model 导入结果，Drawing 与 Objects 只有一个非空
type Model struct {
	Path    string
	Format  string
	Drawing *dxf.Drawing
	Objects mesh.Objects
}

// Importer 读取一个文件
type Importer func(path string, cfg config.Config, progress core.Progress) (*Model, error)

var importers = map[string]Importer{}

// Register 按扩展名（含点，不区分大小写）注册导入器
func Register(ext string, importer Importer) {
	importers[strings.ToLower(ext)] = importer
}

// Formats 已注册的扩展名
func Formats() []string {
	exts := make([]string, 0, len(importers))
	for ext := range importers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

func init() {
	Register(".dxf", func(path string, cfg config.Config, progress core.Progress) (*Model, error) {
		drawing, err := dxf.Open(path, cfg.DXF, progress)
		if err != nil {
			return nil, err
		}
		return &Model{Path: path, Format: "dxf", Drawing: drawing}, nil
	})
	Register(".stl", meshImporter("stl", stl.Open))
	Register(".asc", meshImporter("asc", asc.Open))
}

func meshImporter(format string, open func(string, mesh.Options, core.Progress) (mesh.Objects, error)) Importer {
	return func(path string, cfg config.Config, progress core.Progress) (*Model, error) {
		objs, err := open(path, cfg.Mesh, progress)
		if err != nil {
			return nil, err
		}
		return &Model{Path: path, Format: format, Objects: objs}, nil
	}
}

// Open 按扩展名选择导入器，未知扩展名返回 core.ErrFormatMismatch
func Open(path string, cfg config.Config, progress core.Progress) (*Model, error) {
	importer, ok := importers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, errors.Wrapf(core.ErrFormatMismatch, "unknown format %q", path)
	}
	return importer(path, cfg, progress)
}

// Box 模型的包围盒，图纸的 Z 为 0
func (m *Model) Box() (sdf.Box3, bool) {
	if m.Drawing != nil {
		box, ok := m.Drawing.Box()
		return sdf.Box3{
			Min: v3.Vec{X: box.Min.X, Y: box.Min.Y},
			Max: v3.Vec{X: box.Max.X, Y: box.Max.Y},
		}, ok
	}
	return m.Objects.Box()
}
