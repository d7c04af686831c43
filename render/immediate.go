// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/gogpu/visual"
)

// ErrContextReleased is returned by every ImmediateContext method called
// after the context was closed.
var ErrContextReleased = errors.New("render: immediate drawing context released")

// ImmediateContext grants a custom drawable access to the platform drawing
// surface for the duration of a single render call.
//
// An ImmediateContext is acquired with Acquire and must be closed on every
// exit path, typically with defer. It is intentionally not a DrawingContext:
// it cannot be handed to another operation's Render, so render calls never
// nest on one instance. Drawables must not keep a reference to it after
// their render call returns.
type ImmediateContext struct {
	impl     DrawingContext
	base     int
	released bool
}

// Acquire wraps impl for one render call.
// The current state level of impl is recorded and restored by Close.
func Acquire(impl DrawingContext) *ImmediateContext {
	return &ImmediateContext{
		impl: impl,
		base: impl.Level(),
	}
}

// Close releases the context. Any state the drawable pushed and did not pop
// is popped. Close is idempotent.
func (c *ImmediateContext) Close() error {
	if c.released {
		return nil
	}
	c.released = true
	c.impl.RestoreTo(c.base)
	c.impl = nil
	return nil
}

// Released reports whether Close has been called.
func (c *ImmediateContext) Released() bool {
	return c.released
}

// State is a pushed transform, clip or opacity level.
// Pop restores the context to the level it had before the push.
type State struct {
	ctx   *ImmediateContext
	level int
}

// Pop undoes the push and everything pushed after it.
// Popping a state of a released context is a no-op.
func (s State) Pop() {
	if s.ctx == nil || s.ctx.released {
		return
	}
	s.ctx.impl.RestoreTo(s.level)
}

// Transform returns the current local-to-device transform.
func (c *ImmediateContext) Transform() (visual.Matrix, error) {
	if c.released {
		return visual.Matrix{}, ErrContextReleased
	}
	return c.impl.Transform(), nil
}

// FillRectangle fills r with rounded corners.
func (c *ImmediateContext) FillRectangle(r visual.Rect, radius float64, brush color.Color) error {
	if c.released {
		return ErrContextReleased
	}
	c.impl.FillRectangle(r, radius, brush)
	return nil
}

// DrawRectangle fills r with brush (which may be nil) and outlines it with pen.
func (c *ImmediateContext) DrawRectangle(r visual.Rect, radius float64, brush color.Color, pen Pen) error {
	if c.released {
		return ErrContextReleased
	}
	if brush != nil {
		c.impl.FillRectangle(r, radius, brush)
	}
	if pen.IsVisible() {
		c.impl.StrokeRectangle(r, radius, pen)
	}
	return nil
}

// DrawEllipse fills the ellipse inscribed in r with brush (which may be nil)
// and outlines it with pen.
func (c *ImmediateContext) DrawEllipse(r visual.Rect, brush color.Color, pen Pen) error {
	if c.released {
		return ErrContextReleased
	}
	if brush != nil {
		c.impl.FillEllipse(r, brush)
	}
	if pen.IsVisible() {
		c.impl.StrokeEllipse(r, pen)
	}
	return nil
}

// DrawLine strokes the segment p0-p1.
func (c *ImmediateContext) DrawLine(p0, p1 visual.Point, pen Pen) error {
	if c.released {
		return ErrContextReleased
	}
	c.impl.DrawLine(p0, p1, pen)
	return nil
}

// DrawGeometry fills g with brush (which may be nil) and outlines it with pen.
func (c *ImmediateContext) DrawGeometry(g *Geometry, brush color.Color, pen Pen) error {
	if c.released {
		return ErrContextReleased
	}
	if brush != nil {
		c.impl.FillGeometry(g, brush)
	}
	if pen.IsVisible() {
		c.impl.StrokeGeometry(g, pen)
	}
	return nil
}

// DrawText draws one line of text with its top-left corner at origin.
func (c *ImmediateContext) DrawText(s string, origin visual.Point, face font.Face, brush color.Color) error {
	if c.released {
		return ErrContextReleased
	}
	c.impl.DrawText(s, origin, face, brush)
	return nil
}

// DrawImage draws the src part of img scaled into dst.
func (c *ImmediateContext) DrawImage(img image.Image, src image.Rectangle, dst visual.Rect, opacity float64) error {
	if c.released {
		return ErrContextReleased
	}
	c.impl.DrawImage(img, src, dst, opacity)
	return nil
}

// PushTransform multiplies the current transform by m until the returned
// state is popped.
func (c *ImmediateContext) PushTransform(m visual.Matrix) (State, error) {
	return c.push(func() { c.impl.PushTransform(m) })
}

// PushClip restricts drawing to r until the returned state is popped.
func (c *ImmediateContext) PushClip(r visual.Rect) (State, error) {
	return c.push(func() { c.impl.PushClip(r) })
}

// PushOpacity multiplies the opacity by o until the returned state is popped.
func (c *ImmediateContext) PushOpacity(o float64) (State, error) {
	return c.push(func() { c.impl.PushOpacity(o) })
}

func (c *ImmediateContext) push(fn func()) (State, error) {
	if c.released {
		return State{}, ErrContextReleased
	}
	s := State{ctx: c, level: c.impl.Level()}
	fn()
	return s, nil
}
