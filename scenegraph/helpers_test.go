// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/render"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// countingDrawable records every call it receives.
type countingDrawable struct {
	key      string
	bounds   visual.Rect
	fill     color.Color
	renders  int
	closes   int
	err      error
	panicVal any
	closeErr error
	onRender func(ctx *render.ImmediateContext)
}

func newDrawable(key string, bounds visual.Rect) *countingDrawable {
	return &countingDrawable{key: key, bounds: bounds, fill: red}
}

func (d *countingDrawable) Bounds() visual.Rect { return d.bounds }

func (d *countingDrawable) HitTest(p visual.Point) bool { return d.bounds.Contains(p) }

func (d *countingDrawable) Render(ctx *render.ImmediateContext) error {
	d.renders++
	if d.onRender != nil {
		d.onRender(ctx)
	}
	if d.panicVal != nil {
		panic(d.panicVal)
	}
	if d.err != nil {
		return d.err
	}
	return ctx.FillRectangle(d.bounds, 0, d.fill)
}

func (d *countingDrawable) Equal(other Drawable) bool {
	x, ok := other.(*countingDrawable)
	return ok && x.key == d.key && x.bounds == d.bounds && colorsEqual(x.fill, d.fill)
}

func (d *countingDrawable) Close() error {
	d.closes++
	return d.closeErr
}

func mustCustom(t *testing.T, d Drawable, m visual.Matrix) *CustomOp {
	t.Helper()
	op, err := NewCustomOp(d, m)
	require.NoError(t, err)
	return op
}

func mustRect(t *testing.T, r visual.Rect, m visual.Matrix, opts ...StyleOption) *RectangleOp {
	t.Helper()
	op, err := NewRectangleOp(r, m, opts...)
	require.NoError(t, err)
	return op
}

func record(t *testing.T, g *SceneGraph, id NodeID, ops ...Operation) *Recorder {
	t.Helper()
	rec, err := g.Open(id)
	require.NoError(t, err)
	for _, op := range ops {
		require.NoError(t, rec.Append(op))
	}
	require.NoError(t, rec.Close())
	return rec
}

func newTestCanvas(w, h int) *render.Canvas {
	return render.NewCanvas(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// logCapture is a slog.Handler keeping every record in memory.
type logCapture struct {
	mu      sync.Mutex
	records []slog.Record
}

func (c *logCapture) Enabled(context.Context, slog.Level) bool { return true }

func (c *logCapture) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r.Clone())
	return nil
}

func (c *logCapture) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *logCapture) WithGroup(string) slog.Handler      { return c }

func (c *logCapture) at(level slog.Level) []slog.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []slog.Record
	for _, r := range c.records {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// captureLogs routes visual.Logger into a logCapture for the rest of the test.
// Tests using it must not run in parallel.
func captureLogs(t *testing.T) *logCapture {
	t.Helper()
	c := &logCapture{}
	orig := visual.Logger()
	visual.SetLogger(slog.New(c))
	t.Cleanup(func() { visual.SetLogger(orig) })
	return c
}

func attr(r slog.Record, key string) slog.Value {
	var v slog.Value
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			v = a.Value
			return false
		}
		return true
	})
	return v
}
