package geom

import "image/color"

// Style 图形的绘制样式，Fill 与 Stroke 为空表示不填充或不描边
type Style struct {
	Fill   *color.RGBA
	Stroke *color.RGBA
	Width  float64
}

// StrokeStyle 描边样式
func StrokeStyle(c color.RGBA, width float64) Style {
	return Style{Stroke: &c, Width: width}
}

// FillStyle 填充样式
func FillStyle(c color.RGBA) Style {
	return Style{Fill: &c, Width: 1}
}

// Paint 返回可修改的样式
func (s *Style) Paint() *Style {
	return s
}
