package geom

import (
	"math"
	"strings"
	"sync"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// 默认字体参数
const (
	FontSize    = 10
	LineSpacing = 1.5
	curveSteps  = 4
)

var (
	fontOnce sync.Once
	monoFont *sfnt.Font
	fontErr  error
)

func defaultFont() (*sfnt.Font, error) {
	fontOnce.Do(func() {
		monoFont, fontErr = sfnt.Parse(gomono.TTF)
	})
	return monoFont, fontErr
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// NewText 以默认等宽字体生成文字轮廓，原点在首行基线左端，字体上升高度缩放到 height。
// 换行符开始新的一行。
func NewText(content string, height float64) (*Text, error) {
	f, err := defaultFont()
	if err != nil {
		return nil, errors.Wrap(err, "parse default font")
	}

	var (
		buf     sfnt.Buffer
		ppem    = fixed.I(FontSize)
		outline [][]v2.Vec
	)

	metrics, err := f.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, errors.Wrap(err, "font metrics")
	}

	for row, line := range strings.Split(content, "\n") {
		x, baseline := 0.0, -float64(row)*FontSize*LineSpacing
		for _, r := range line {
			index, err := f.GlyphIndex(&buf, r)
			if err != nil {
				return nil, errors.Wrapf(err, "glyph %q", r)
			}
			if index != 0 {
				segments, err := f.LoadGlyph(&buf, index, ppem, nil)
				if err != nil {
					return nil, errors.Wrapf(err, "load glyph %q", r)
				}
				outline = append(outline, flatten(segments, x, baseline)...)
			}
			advance, err := f.GlyphAdvance(&buf, index, ppem, font.HintingNone)
			if err != nil {
				return nil, errors.Wrapf(err, "glyph advance %q", r)
			}
			x += toFloat(advance)
		}
	}

	text := &Text{Content: content, Height: FontSize, Outline: outline}
	if ascent := toFloat(metrics.Ascent); ascent > 0 && height > 0 {
		scale := height / ascent
		text.Transform(sdf.Scale2d(v2.Vec{X: scale, Y: scale}))
	}
	text.Height = height

	return text, nil
}

// Place 先旋转 rotation 度再平移到 origin
func (t *Text) Place(origin v2.Vec, rotation float64) {
	if rotation != 0 {
		t.Transform(sdf.Rotate2d(rotation * math.Pi / 180))
	}
	t.Transform(sdf.Translate2d(origin))
}

// flatten 字形轮廓转折线，字体坐标 y 轴向下
func flatten(segments sfnt.Segments, dx, dy float64) [][]v2.Vec {
	var (
		contours [][]v2.Vec
		current  []v2.Vec
	)

	point := func(p fixed.Point26_6) v2.Vec {
		return v2.Vec{X: dx + toFloat(p.X), Y: dy - toFloat(p.Y)}
	}
	closeContour := func() {
		if len(current) > 1 {
			if current[0] != current[len(current)-1] {
				current = append(current, current[0])
			}
			contours = append(contours, current)
		}
		current = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			current = []v2.Vec{point(seg.Args[0])}
		case sfnt.SegmentOpLineTo:
			current = append(current, point(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p0, p1, p2 := current[len(current)-1], point(seg.Args[0]), point(seg.Args[1])
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				a, b, c := (1-t)*(1-t), 2*(1-t)*t, t*t
				current = append(current, p0.MulScalar(a).Add(p1.MulScalar(b)).Add(p2.MulScalar(c)))
			}
		case sfnt.SegmentOpCubeTo:
			p0, p1, p2, p3 := current[len(current)-1], point(seg.Args[0]), point(seg.Args[1]), point(seg.Args[2])
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				a, b, c, d := (1-t)*(1-t)*(1-t), 3*(1-t)*(1-t)*t, 3*(1-t)*t*t, t*t*t
				current = append(current, p0.MulScalar(a).Add(p1.MulScalar(b)).Add(p2.MulScalar(c)).Add(p3.MulScalar(d)))
			}
		}
	}
	closeContour()

	return contours
}
