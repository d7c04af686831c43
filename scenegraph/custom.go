// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/render"
)

// Drawable is user-supplied drawing plugged into a frame with NewCustomOp.
//
// Bounds and HitTest work in the drawable's local coordinates. Render
// receives a context scoped to the call; it must not be retained. Equal
// must be symmetric and consistent with what Render draws. Close is called
// at most once, when the wrapping operation is retired.
type Drawable interface {
	Bounds() visual.Rect
	HitTest(p visual.Point) bool
	Render(ctx *render.ImmediateContext) error
	Equal(other Drawable) bool
	Close() error
}

// CustomOp adapts a Drawable to the Operation contract.
//
// Render never propagates a drawable failure. Errors and panics raised by
// the drawable are logged at error level with area "Visual" and the
// drawable's type, and the rest of the frame is unaffected.
type CustomOp struct {
	transformed
	drawable  Drawable
	rendering bool
	closeOnce sync.Once
}

// NewCustomOp wraps d with the local-to-global transform m.
// The operation's bounds are captured from d.Bounds once.
func NewCustomOp(d Drawable, m visual.Matrix) (*CustomOp, error) {
	if isNil(d) {
		return nil, ErrNilDrawable
	}
	base, err := newTransformed(d.Bounds(), m)
	if err != nil {
		return nil, fmt.Errorf("scenegraph: custom op %T: %w", d, err)
	}
	return &CustomOp{transformed: base, drawable: d}, nil
}

// Drawable returns the wrapped drawable.
func (o *CustomOp) Drawable() Drawable { return o.drawable }

// HitTest maps p into local coordinates and asks the drawable.
func (o *CustomOp) HitTest(p visual.Point) bool {
	return o.hitTest(p, o.drawable.HitTest)
}

// Render draws the drawable through an ImmediateContext wrapping ctx.
// The context is released on every exit path, including a panic.
func (o *CustomOp) Render(ctx render.DrawingContext) {
	if o.closed {
		return
	}
	if o.rendering {
		reportRenderError(&RenderError{
			Drawable: typeName(o.drawable),
			Op:       "Render",
			Err:      ErrReentrantRender,
		})
		return
	}
	o.rendering = true
	defer func() { o.rendering = false }()

	if err := o.renderDrawable(ctx); err != nil {
		reportRenderError(err)
	}
}

func (o *CustomOp) renderDrawable(ctx render.DrawingContext) (rerr *RenderError) {
	ic := render.Acquire(ctx)
	defer func() {
		if r := recover(); r != nil {
			rerr = &RenderError{
				Drawable: typeName(o.drawable),
				Op:       "Render",
				Err:      panicError(r),
				Stack:    debug.Stack(),
			}
		}
		_ = ic.Close()
	}()

	if err := o.drawable.Render(ic); err != nil {
		return &RenderError{Drawable: typeName(o.drawable), Op: "Render", Err: err}
	}
	return nil
}

// Equal reports whether other wraps an equal drawable with the same transform.
func (o *CustomOp) Equal(other Operation) bool {
	x, ok := other.(*CustomOp)
	return ok && o.Matches(x.transform, x.drawable)
}

// Matches reports whether the operation has transform m and a drawable
// equal to d. Equality is checked in both directions.
func (o *CustomOp) Matches(m visual.Matrix, d Drawable) bool {
	if o.transform != m || isNil(d) {
		return false
	}
	if sameInstance(o.drawable, d) {
		return true
	}
	return o.drawable.Equal(d) && d.Equal(o.drawable)
}

// Close closes the drawable. Only the first call reaches the drawable;
// later calls return nil.
func (o *CustomOp) Close() error {
	var err error
	o.closeOnce.Do(func() {
		o.closed = true
		err = o.drawable.Close()
	})
	return err
}

// abandon retires the operation without closing its drawable. It is used
// when an equal operation sharing the same drawable is kept in its place.
func (o *CustomOp) abandon() {
	o.closeOnce.Do(func() {
		o.closed = true
	})
}

func reportRenderError(err *RenderError) {
	args := []any{
		"area", visual.AreaVisual,
		"drawable", err.Drawable,
		"op", err.Op,
		"err", err.Err,
	}
	if err.Panicked() {
		args = append(args, "stack", string(err.Stack))
	}
	visual.Logger().Error(fmt.Sprintf("Exception in %s.%s", err.Drawable, err.Op), args...)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
