// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"fmt"
	"image/color"
	"reflect"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/render"
)

// Operation is one paintable, hit-testable unit of a frame.
//
// Operations are immutable after construction. The SceneGraph owns every
// operation appended to it and calls Close exactly once when the operation
// is retired.
type Operation interface {
	// Bounds returns the bounds in local coordinates.
	Bounds() visual.Rect

	// Transform returns the local-to-global transform.
	Transform() visual.Matrix

	// GlobalBounds returns the axis-aligned bounds in global coordinates.
	GlobalBounds() visual.Rect

	// HitTest reports whether the global point p hits the operation.
	// A closed operation never reports a hit.
	HitTest(p visual.Point) bool

	// Render draws the operation in local coordinates. The caller has
	// already pushed Transform onto ctx.
	Render(ctx render.DrawingContext)

	// Equal reports whether other has the same transform and content, in
	// which case the frame can keep this operation without repainting it.
	Equal(other Operation) bool

	// Close releases the operation's resources.
	Close() error
}

// transformed is the transform-aware base shared by every operation.
type transformed struct {
	bounds    visual.Rect
	transform visual.Matrix
	inverse   visual.Matrix
	global    visual.Rect
	closed    bool
}

// newTransformed validates bounds and transform. Malformed input fails here
// rather than surfacing later as a missed hit or a corrupt frame.
func newTransformed(bounds visual.Rect, m visual.Matrix) (transformed, error) {
	if !bounds.IsValid() {
		return transformed{}, fmt.Errorf("%w: %+v", visual.ErrInvalidBounds, bounds)
	}
	inv, ok := m.Invert()
	if !ok {
		return transformed{}, fmt.Errorf("%w: %+v", visual.ErrSingularTransform, m)
	}
	return transformed{
		bounds:    bounds,
		transform: m,
		inverse:   inv,
		global:    m.TransformRect(bounds),
	}, nil
}

// Bounds returns the bounds in local coordinates.
func (t *transformed) Bounds() visual.Rect { return t.bounds }

// Transform returns the local-to-global transform.
func (t *transformed) Transform() visual.Matrix { return t.transform }

// GlobalBounds returns the axis-aligned bounds in global coordinates.
func (t *transformed) GlobalBounds() visual.Rect { return t.global }

// Closed reports whether the operation has been retired.
func (t *transformed) Closed() bool { return t.closed }

// Close marks the operation as retired.
func (t *transformed) Close() error {
	t.closed = true
	return nil
}

// hitTest maps the global point into local space and asks local.
func (t *transformed) hitTest(p visual.Point, local func(visual.Point) bool) bool {
	if t.closed || !p.IsFinite() {
		return false
	}
	return local(t.inverse.TransformPoint(p))
}

// colorsEqual compares two colors by their premultiplied RGBA values.
func colorsEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func pensEqual(a, b render.Pen) bool {
	return a.Thickness == b.Thickness && colorsEqual(a.Brush, b.Brush)
}

// sameInstance reports whether a and b are the same pointer.
// Values that are not pointers are never considered the same instance.
func sameInstance(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || va.Kind() != reflect.Pointer {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

// isNil reports whether v is nil or a typed nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
