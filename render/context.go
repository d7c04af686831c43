// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/gogpu/visual"
)

// Pen describes how outlines are stroked.
type Pen struct {
	// Brush is the stroke color. A nil Brush draws nothing.
	Brush color.Color

	// Thickness is the stroke width in local units.
	Thickness float64
}

// IsVisible reports whether the pen would draw anything.
func (p Pen) IsVisible() bool {
	return p.Brush != nil && p.Thickness > 0
}

// DrawingContext is the platform drawing surface.
//
// Coordinates passed to the drawing methods are local: they are mapped
// through the current transform, which starts as the identity and is changed
// with PushTransform. Every Push* call adds one level to the state stack;
// Pop removes the top level and RestoreTo drops back to a level previously
// returned by Level.
type DrawingContext interface {
	// FillRectangle fills r, rounding the corners by radius.
	FillRectangle(r visual.Rect, radius float64, brush color.Color)

	// StrokeRectangle outlines r, rounding the corners by radius.
	StrokeRectangle(r visual.Rect, radius float64, pen Pen)

	// FillEllipse fills the ellipse inscribed in r.
	FillEllipse(r visual.Rect, brush color.Color)

	// StrokeEllipse outlines the ellipse inscribed in r.
	StrokeEllipse(r visual.Rect, pen Pen)

	// DrawLine strokes the segment from p0 to p1.
	DrawLine(p0, p1 visual.Point, pen Pen)

	// FillGeometry fills g with the non-zero winding rule.
	FillGeometry(g *Geometry, brush color.Color)

	// StrokeGeometry outlines every segment of g.
	StrokeGeometry(g *Geometry, pen Pen)

	// DrawText draws a single line of text with its top-left corner at origin.
	DrawText(s string, origin visual.Point, face font.Face, brush color.Color)

	// DrawImage draws the src part of img scaled into dst.
	DrawImage(img image.Image, src image.Rectangle, dst visual.Rect, opacity float64)

	// PushTransform multiplies the current transform by m.
	PushTransform(m visual.Matrix)

	// PushClip intersects the clip with r, given in local coordinates.
	PushClip(r visual.Rect)

	// PushOpacity multiplies the current opacity by o.
	PushOpacity(o float64)

	// Pop removes the most recent Push*. Popping the base level is a no-op.
	Pop()

	// Level returns the current depth of the state stack.
	Level() int

	// RestoreTo pops every level above level.
	RestoreTo(level int)

	// Transform returns the current local-to-device transform.
	Transform() visual.Matrix
}
