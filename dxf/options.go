package dxf

import (
	"log/slog"

	"github.com/zooyer/cadimport/entities"
)

// Options 按实体种类开关加载，块默认关闭
type Options struct {
	Points    bool `toml:"points"`
	Lines     bool `toml:"lines"`
	Circles   bool `toml:"circles"`
	Ellipses  bool `toml:"ellipses"`
	Arcs      bool `toml:"arcs"`
	Polylines bool `toml:"polylines"`
	Splines   bool `toml:"splines"`
	Hatches   bool `toml:"hatches"`
	Texts     bool `toml:"texts"` // TEXT 与 MTEXT
	Blocks    bool `toml:"blocks"`

	Logger *slog.Logger `toml:"-"`
}

func DefaultOptions() Options {
	return Options{
		Points:    true,
		Lines:     true,
		Circles:   true,
		Ellipses:  true,
		Arcs:      true,
		Polylines: true,
		Splines:   true,
		Hatches:   true,
		Texts:     true,
	}
}

// Enabled 该种类的实体是否加载
func (o Options) Enabled(kind entities.Kind) bool {
	switch kind {
	case entities.KindPoint:
		return o.Points
	case entities.KindLine:
		return o.Lines
	case entities.KindCircle:
		return o.Circles
	case entities.KindEllipse:
		return o.Ellipses
	case entities.KindArc:
		return o.Arcs
	case entities.KindPolyline:
		return o.Polylines
	case entities.KindSpline:
		return o.Splines
	case entities.KindHatch:
		return o.Hatches
	case entities.KindText, entities.KindMText:
		return o.Texts
	}
	return false
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
