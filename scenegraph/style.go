// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"image/color"

	"github.com/gogpu/visual/render"
)

// Style holds the paint of a built-in shape operation.
type Style struct {
	// Fill is the interior color. Nil leaves the interior unpainted
	// and not hit-testable.
	Fill color.Color

	// Pen strokes the outline.
	Pen render.Pen

	// Radius rounds rectangle corners.
	Radius float64
}

// StyleOption configures a Style.
type StyleOption func(*Style)

// Fill sets the interior color.
func Fill(c color.Color) StyleOption {
	return func(s *Style) {
		s.Fill = c
	}
}

// Stroke sets the outline color and thickness.
func Stroke(c color.Color, thickness float64) StyleOption {
	return func(s *Style) {
		s.Pen = render.Pen{Brush: c, Thickness: thickness}
	}
}

// CornerRadius rounds rectangle corners.
func CornerRadius(r float64) StyleOption {
	return func(s *Style) {
		if r > 0 {
			s.Radius = r
		}
	}
}

func newStyle(opts []StyleOption) Style {
	var s Style
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s Style) equal(o Style) bool {
	return s.Radius == o.Radius && colorsEqual(s.Fill, o.Fill) && pensEqual(s.Pen, o.Pen)
}

// halfStroke is the distance the outline extends beyond the shape.
func (s Style) halfStroke() float64 {
	if !s.Pen.IsVisible() {
		return 0
	}
	return s.Pen.Thickness / 2
}
