package entities

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/zooyer/cadimport/core"
	"github.com/zooyer/cadimport/geom"
)

// Kind 实体种类，取值为 DXF 中的实体关键字
type Kind string

const (
	KindPoint    Kind = "POINT"
	KindLine     Kind = "LINE"
	KindCircle   Kind = "CIRCLE"
	KindArc      Kind = "ARC"
	KindEllipse  Kind = "ELLIPSE"
	KindPolyline Kind = "LWPOLYLINE"
	KindSpline   Kind = "SPLINE"
	KindHatch    Kind = "HATCH"
	KindText     Kind = "TEXT"
	KindMText    Kind = "MTEXT"
)

// Entity 一个已解析的实体
type Entity struct {
	ID    string
	Kind  Kind
	Shape geom.Shape
}

// Builder 在句柄与样式之后读取实体的几何数据
type Builder func(s *core.Scanner) (geom.Shape, error)

type factory struct {
	label string // 子类标记，样式扫描到此为止
	fill  bool
	build Builder
}

var registry = map[Kind]factory{}

// Register 允许以后动态扩展新的实体类型
func Register(kind Kind, label string, fill bool, build Builder) {
	registry[kind] = factory{label: label, fill: fill, build: build}
}

// Lookup 根据实体关键字查找已注册的种类
func Lookup(keyword string) (Kind, bool) {
	kind := Kind(strings.ToUpper(strings.TrimSpace(keyword)))
	_, ok := registry[kind]
	return kind, ok
}

// Kinds 已注册的全部种类（排序）
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Build 扫描器位于实体关键字之后，依次读取句柄、样式和几何
func Build(kind Kind, s *core.Scanner) (*Entity, error) {
	f, ok := registry[kind]
	if !ok {
		return nil, errors.Wrapf(core.ErrFormatMismatch, "unregistered entity %s", kind)
	}

	id, err := LoadID(s)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s handle", kind)
	}

	color := Color(LoadStyle(f.label, s))
	shape, err := f.build(s)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s %s", kind, id)
	}

	if f.fill {
		*shape.Paint() = geom.FillStyle(color)
	} else {
		*shape.Paint() = geom.StrokeStyle(color, 1)
	}

	return &Entity{ID: id, Kind: kind, Shape: shape}, nil
}

// maxPrealloc 按文件中的计数预分配的上限，计数本身不可信
const maxPrealloc = 1024

// capacity 计数对应的预分配容量
func capacity(count int) int {
	return min(max(count, 0), maxPrealloc)
}

// degenerate 几何退化按字段错误处理，同时保留原始原因
func degenerate(err error) error {
	return fmt.Errorf("%w: %w", core.ErrMalformedField, err)
}
