// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/render"
)

func TestCustomOpHitTest(t *testing.T) {
	d := newDrawable("a", visual.R(0, 0, 10, 10))

	tests := []struct {
		name string
		m    visual.Matrix
		p    visual.Point
		want bool
	}{
		{"inside", visual.Identity(), visual.Pt(5, 5), true},
		{"outside", visual.Identity(), visual.Pt(20, 20), false},
		{"edge", visual.Identity(), visual.Pt(10, 10), true},
		{"translated inside", visual.Translate(100, 0), visual.Pt(105, 5), true},
		{"translated origin", visual.Translate(100, 0), visual.Pt(5, 5), false},
		{"scaled", visual.Scale(2, 2), visual.Pt(15, 15), true},
		{"scaled outside", visual.Scale(2, 2), visual.Pt(25, 5), false},
		{"rotated", visual.Rotate(math.Pi / 2), visual.Pt(-5, 5), true},
		{"rotated miss", visual.Rotate(math.Pi / 2), visual.Pt(5, 5), false},
		{"nan", visual.Identity(), visual.Pt(math.NaN(), 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := mustCustom(t, d, tt.m)
			assert.Equal(t, tt.want, op.HitTest(tt.p))
		})
	}
}

func TestCustomOpGlobalBounds(t *testing.T) {
	op := mustCustom(t, newDrawable("a", visual.R(0, 0, 10, 5)), visual.Translate(3, 4).Multiply(visual.Scale(2, 2)))
	assert.Equal(t, visual.R(0, 0, 10, 5), op.Bounds())
	assert.Equal(t, visual.R(3, 4, 20, 10), op.GlobalBounds())
}

func TestNewCustomOpErrors(t *testing.T) {
	_, err := NewCustomOp(nil, visual.Identity())
	assert.ErrorIs(t, err, ErrNilDrawable)

	var typedNil *countingDrawable
	_, err = NewCustomOp(typedNil, visual.Identity())
	assert.ErrorIs(t, err, ErrNilDrawable)

	_, err = NewCustomOp(newDrawable("a", visual.R(0, 0, 1, 1)), visual.Scale(0, 1))
	assert.ErrorIs(t, err, visual.ErrSingularTransform)

	_, err = NewCustomOp(newDrawable("a", visual.R(0, 0, math.Inf(1), 1)), visual.Identity())
	assert.ErrorIs(t, err, visual.ErrInvalidBounds)

	_, err = NewCustomOp(newDrawable("a", visual.R(0, 0, -1, 1)), visual.Identity())
	assert.ErrorIs(t, err, visual.ErrInvalidBounds)
}

func TestCustomOpRender(t *testing.T) {
	logs := captureLogs(t)
	d := newDrawable("a", visual.R(0, 0, 4, 4))
	op := mustCustom(t, d, visual.Identity())
	c := newTestCanvas(8, 8)

	op.Render(c)

	assert.Equal(t, 1, d.renders)
	assert.Equal(t, red, c.Image().RGBAAt(2, 2))
	assert.Empty(t, logs.at(slog.LevelError))
}

func TestCustomOpRenderErrorIsReported(t *testing.T) {
	logs := captureLogs(t)
	boom := errors.New("boom")
	d := newDrawable("a", visual.R(0, 0, 4, 4))
	d.err = boom
	op := mustCustom(t, d, visual.Identity())

	assert.NotPanics(t, func() { op.Render(newTestCanvas(8, 8)) })

	records := logs.at(slog.LevelError)
	require.Len(t, records, 1)
	r := records[0]
	assert.Contains(t, r.Message, "Exception in *scenegraph.countingDrawable.Render")
	assert.Equal(t, visual.AreaVisual, attr(r, "area").String())
	assert.Equal(t, "*scenegraph.countingDrawable", attr(r, "drawable").String())
	assert.Equal(t, "Render", attr(r, "op").String())
	err, ok := attr(r, "err").Any().(error)
	require.True(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestCustomOpRenderPanicIsReported(t *testing.T) {
	logs := captureLogs(t)
	var captured *render.ImmediateContext
	d := newDrawable("a", visual.R(0, 0, 4, 4))
	d.panicVal = "kaboom"
	d.onRender = func(ctx *render.ImmediateContext) {
		captured = ctx
		_, err := ctx.PushTransform(visual.Scale(2, 2))
		require.NoError(t, err)
	}
	op := mustCustom(t, d, visual.Identity())
	c := newTestCanvas(8, 8)
	level := c.Level()

	assert.NotPanics(t, func() { op.Render(c) })

	require.NotNil(t, captured)
	assert.True(t, captured.Released(), "context must be released after a panic")
	assert.Equal(t, level, c.Level())

	records := logs.at(slog.LevelError)
	require.Len(t, records, 1)
	assert.Contains(t, attr(records[0], "err").String(), "kaboom")
	assert.NotEmpty(t, attr(records[0], "stack").String())
}

func TestCustomOpRenderReleasesContext(t *testing.T) {
	var captured *render.ImmediateContext
	d := newDrawable("a", visual.R(0, 0, 4, 4))
	d.onRender = func(ctx *render.ImmediateContext) {
		captured = ctx
		_, _ = ctx.PushClip(visual.R(0, 0, 1, 1))
		_, _ = ctx.PushOpacity(0.5)
	}
	op := mustCustom(t, d, visual.Identity())
	c := newTestCanvas(8, 8)
	c.PushTransform(visual.Translate(1, 1))
	level := c.Level()

	op.Render(c)

	assert.True(t, captured.Released())
	assert.Equal(t, level, c.Level())
	assert.Equal(t, visual.Translate(1, 1), c.Transform())

	err := captured.FillRectangle(visual.R(0, 0, 1, 1), 0, red)
	assert.ErrorIs(t, err, render.ErrContextReleased)
}

func TestCustomOpRenderIsNotReentrant(t *testing.T) {
	logs := captureLogs(t)
	c := newTestCanvas(8, 8)
	d := newDrawable("a", visual.R(0, 0, 4, 4))
	op := mustCustom(t, d, visual.Identity())
	d.onRender = func(*render.ImmediateContext) {
		op.Render(c)
	}

	op.Render(c)

	assert.Equal(t, 1, d.renders)
	records := logs.at(slog.LevelError)
	require.Len(t, records, 1)
	err, ok := attr(records[0], "err").Any().(error)
	require.True(t, ok)
	assert.ErrorIs(t, err, ErrReentrantRender)

	// The guard is reset once the outer call returns.
	d.onRender = nil
	op.Render(c)
	assert.Equal(t, 2, d.renders)
}

func TestCustomOpCloseOnce(t *testing.T) {
	d := newDrawable("a", visual.R(0, 0, 10, 10))
	op := mustCustom(t, d, visual.Identity())

	require.NoError(t, op.Close())
	require.NoError(t, op.Close())
	assert.Equal(t, 1, d.closes)
	assert.True(t, op.Closed())

	assert.False(t, op.HitTest(visual.Pt(5, 5)), "closed operation must not hit")
	op.Render(newTestCanvas(8, 8))
	assert.Zero(t, d.renders, "closed operation must not render")
}

func TestCustomOpCloseError(t *testing.T) {
	d := newDrawable("a", visual.R(0, 0, 10, 10))
	d.closeErr = errors.New("busy")
	op := mustCustom(t, d, visual.Identity())

	assert.EqualError(t, op.Close(), "busy")
	assert.NoError(t, op.Close())
	assert.Equal(t, 1, d.closes)
}

func TestCustomOpEqual(t *testing.T) {
	bounds := visual.R(0, 0, 10, 10)
	a := mustCustom(t, newDrawable("a", bounds), visual.Translate(1, 2))
	b := mustCustom(t, newDrawable("a", bounds), visual.Translate(1, 2))
	moved := mustCustom(t, newDrawable("a", bounds), visual.Translate(2, 2))
	other := mustCustom(t, newDrawable("b", bounds), visual.Translate(1, 2))
	rect := mustRect(t, bounds, visual.Translate(1, 2), Fill(red))

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(moved))
	assert.False(t, moved.Equal(a))
	assert.False(t, a.Equal(other))
	assert.False(t, other.Equal(a))
	assert.False(t, a.Equal(rect))

	assert.True(t, a.Matches(visual.Translate(1, 2), newDrawable("a", bounds)))
	assert.False(t, a.Matches(visual.Identity(), newDrawable("a", bounds)))
	assert.False(t, a.Matches(visual.Translate(1, 2), nil))
}

// asymmetricDrawable claims equality with everything.
type asymmetricDrawable struct{ countingDrawable }

func (*asymmetricDrawable) Equal(Drawable) bool { return true }

func TestCustomOpEqualIsSymmetric(t *testing.T) {
	bounds := visual.R(0, 0, 10, 10)
	greedy := mustCustom(t, &asymmetricDrawable{*newDrawable("x", bounds)}, visual.Identity())
	plain := mustCustom(t, newDrawable("a", bounds), visual.Identity())

	assert.Equal(t, greedy.Equal(plain), plain.Equal(greedy))
	assert.False(t, greedy.Equal(plain))
}
