// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"image"
	"math"

	"golang.org/x/image/font"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/render"
)

// RectangleOp paints an optionally rounded rectangle.
type RectangleOp struct {
	transformed
	rect  visual.Rect
	style Style
}

// NewRectangleOp creates a rectangle operation. The bounds include half of
// the stroke thickness on each side.
func NewRectangleOp(r visual.Rect, m visual.Matrix, opts ...StyleOption) (*RectangleOp, error) {
	style := newStyle(opts)
	base, err := newTransformed(r.Inflate(style.halfStroke()), m)
	if err != nil {
		return nil, err
	}
	return &RectangleOp{transformed: base, rect: r, style: style}, nil
}

// Rect returns the rectangle in local coordinates.
func (o *RectangleOp) Rect() visual.Rect { return o.rect }

// Style returns the paint.
func (o *RectangleOp) Style() Style { return o.style }

// HitTest reports whether p falls on the fill or on the outline.
func (o *RectangleOp) HitTest(p visual.Point) bool {
	return o.hitTest(p, o.hitLocal)
}

func (o *RectangleOp) hitLocal(p visual.Point) bool {
	if o.style.Fill != nil && o.rect.Contains(p) {
		return true
	}
	if h := o.style.halfStroke(); h > 0 {
		return o.rect.Inflate(h).Contains(p) && !o.rect.Deflate(visual.Uniform(h)).Contains(p)
	}
	return false
}

// Render draws the rectangle.
func (o *RectangleOp) Render(ctx render.DrawingContext) {
	if o.style.Fill != nil {
		ctx.FillRectangle(o.rect, o.style.Radius, o.style.Fill)
	}
	if o.style.Pen.IsVisible() {
		ctx.StrokeRectangle(o.rect, o.style.Radius, o.style.Pen)
	}
}

// Equal reports whether other is a rectangle with the same transform and paint.
func (o *RectangleOp) Equal(other Operation) bool {
	x, ok := other.(*RectangleOp)
	return ok && x.transform == o.transform && x.rect == o.rect && x.style.equal(o.style)
}

// EllipseOp paints the ellipse inscribed in a rectangle.
type EllipseOp struct {
	transformed
	rect  visual.Rect
	style Style
}

// NewEllipseOp creates an ellipse operation.
func NewEllipseOp(r visual.Rect, m visual.Matrix, opts ...StyleOption) (*EllipseOp, error) {
	style := newStyle(opts)
	base, err := newTransformed(r.Inflate(style.halfStroke()), m)
	if err != nil {
		return nil, err
	}
	return &EllipseOp{transformed: base, rect: r, style: style}, nil
}

// HitTest reports whether p falls on the fill or on the outline.
func (o *EllipseOp) HitTest(p visual.Point) bool {
	return o.hitTest(p, o.hitLocal)
}

func (o *EllipseOp) hitLocal(p visual.Point) bool {
	c := o.rect.Center()
	rx, ry := o.rect.Width/2, o.rect.Height/2
	if o.style.Fill != nil && insideEllipse(p, c, rx, ry) {
		return true
	}
	if h := o.style.halfStroke(); h > 0 {
		return insideEllipse(p, c, rx+h, ry+h) && !insideEllipse(p, c, rx-h, ry-h)
	}
	return false
}

func insideEllipse(p, c visual.Point, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return dx*dx+dy*dy <= 1
}

// Render draws the ellipse.
func (o *EllipseOp) Render(ctx render.DrawingContext) {
	if o.style.Fill != nil {
		ctx.FillEllipse(o.rect, o.style.Fill)
	}
	if o.style.Pen.IsVisible() {
		ctx.StrokeEllipse(o.rect, o.style.Pen)
	}
}

// Equal reports whether other is an ellipse with the same transform and paint.
func (o *EllipseOp) Equal(other Operation) bool {
	x, ok := other.(*EllipseOp)
	return ok && x.transform == o.transform && x.rect == o.rect && x.style.equal(o.style)
}

// LineOp strokes a single segment.
type LineOp struct {
	transformed
	p0, p1 visual.Point
	pen    render.Pen
}

// NewLineOp creates a line operation.
func NewLineOp(p0, p1 visual.Point, pen render.Pen, m visual.Matrix) (*LineOp, error) {
	bounds := visual.RectFromPoints(p0, p1).Inflate(pen.Thickness / 2)
	base, err := newTransformed(bounds, m)
	if err != nil {
		return nil, err
	}
	return &LineOp{transformed: base, p0: p0, p1: p1, pen: pen}, nil
}

// HitTest reports whether p lies within half the pen thickness of the segment.
func (o *LineOp) HitTest(p visual.Point) bool {
	return o.hitTest(p, func(p visual.Point) bool {
		return o.pen.IsVisible() && segmentDistance(p, o.p0, o.p1) <= o.pen.Thickness/2
	})
}

// Render strokes the segment.
func (o *LineOp) Render(ctx render.DrawingContext) {
	if o.pen.IsVisible() {
		ctx.DrawLine(o.p0, o.p1, o.pen)
	}
}

// Equal reports whether other is the same segment with the same transform and pen.
func (o *LineOp) Equal(other Operation) bool {
	x, ok := other.(*LineOp)
	return ok && x.transform == o.transform && x.p0 == o.p0 && x.p1 == o.p1 && pensEqual(x.pen, o.pen)
}

func segmentDistance(p, a, b visual.Point) float64 {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	t = math.Max(0, math.Min(1, t))
	q := a.Lerp(b, t)
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// GeometryOp paints an arbitrary path.
type GeometryOp struct {
	transformed
	geometry *render.Geometry
	style    Style
}

// NewGeometryOp creates a geometry operation. The geometry must not be
// modified afterwards.
func NewGeometryOp(g *render.Geometry, m visual.Matrix, opts ...StyleOption) (*GeometryOp, error) {
	if g == nil {
		g = render.NewGeometry()
	}
	style := newStyle(opts)
	base, err := newTransformed(g.Bounds().Inflate(style.halfStroke()), m)
	if err != nil {
		return nil, err
	}
	return &GeometryOp{transformed: base, geometry: g, style: style}, nil
}

// Geometry returns the path.
func (o *GeometryOp) Geometry() *render.Geometry { return o.geometry }

// HitTest reports whether p falls inside the filled path or on its outline.
func (o *GeometryOp) HitTest(p visual.Point) bool {
	return o.hitTest(p, o.hitLocal)
}

func (o *GeometryOp) hitLocal(p visual.Point) bool {
	if o.style.Fill != nil && o.geometry.Contains(p) {
		return true
	}
	h := o.style.halfStroke()
	if h == 0 {
		return false
	}
	for _, poly := range o.geometry.Outline() {
		for i := 1; i < len(poly); i++ {
			if segmentDistance(p, poly[i-1], poly[i]) <= h {
				return true
			}
		}
	}
	return false
}

// Render draws the path.
func (o *GeometryOp) Render(ctx render.DrawingContext) {
	if o.style.Fill != nil {
		ctx.FillGeometry(o.geometry, o.style.Fill)
	}
	if o.style.Pen.IsVisible() {
		ctx.StrokeGeometry(o.geometry, o.style.Pen)
	}
}

// Equal reports whether other is the same path with the same transform and paint.
func (o *GeometryOp) Equal(other Operation) bool {
	x, ok := other.(*GeometryOp)
	return ok && x.transform == o.transform && x.style.equal(o.style) && x.geometry.Equal(o.geometry)
}

// TextOp draws a single line of text.
type TextOp struct {
	transformed
	text   string
	origin visual.Point
	face   font.Face
	style  Style
}

// NewTextOp creates a text operation. The bounds are measured with face.
func NewTextOp(text string, origin visual.Point, face font.Face, m visual.Matrix, opts ...StyleOption) (*TextOp, error) {
	if face == nil {
		return nil, ErrNilFace
	}
	size := render.MeasureText(face, text)
	base, err := newTransformed(visual.R(origin.X, origin.Y, size.Width, size.Height), m)
	if err != nil {
		return nil, err
	}
	return &TextOp{transformed: base, text: text, origin: origin, face: face, style: newStyle(opts)}, nil
}

// Text returns the string.
func (o *TextOp) Text() string { return o.text }

// HitTest reports whether p falls inside the text box.
func (o *TextOp) HitTest(p visual.Point) bool {
	return o.hitTest(p, o.bounds.Contains)
}

// Render draws the text.
func (o *TextOp) Render(ctx render.DrawingContext) {
	if o.style.Fill != nil && o.text != "" {
		ctx.DrawText(o.text, o.origin, o.face, o.style.Fill)
	}
}

// Equal reports whether other draws the same string with the same face.
func (o *TextOp) Equal(other Operation) bool {
	x, ok := other.(*TextOp)
	return ok && x.transform == o.transform && x.text == o.text && x.origin == o.origin &&
		x.style.equal(o.style) && sameInstance(x.face, o.face)
}

// ImageOp draws part of an image scaled into a destination rectangle.
type ImageOp struct {
	transformed
	img     image.Image
	src     image.Rectangle
	dst     visual.Rect
	opacity float64
}

// NewImageOp creates an image operation. An empty src selects the whole
// image. Opacity is clamped to [0, 1].
func NewImageOp(img image.Image, src image.Rectangle, dst visual.Rect, opacity float64, m visual.Matrix) (*ImageOp, error) {
	if isNil(img) {
		return nil, ErrNilImage
	}
	if src.Empty() {
		src = img.Bounds()
	}
	base, err := newTransformed(dst, m)
	if err != nil {
		return nil, err
	}
	return &ImageOp{
		transformed: base,
		img:         img,
		src:         src,
		dst:         dst,
		opacity:     math.Max(0, math.Min(1, opacity)),
	}, nil
}

// HitTest reports whether p falls inside the destination rectangle.
func (o *ImageOp) HitTest(p visual.Point) bool {
	return o.hitTest(p, o.dst.Contains)
}

// Render draws the image.
func (o *ImageOp) Render(ctx render.DrawingContext) {
	if o.opacity > 0 {
		ctx.DrawImage(o.img, o.src, o.dst, o.opacity)
	}
}

// Equal reports whether other draws the same image instance the same way.
func (o *ImageOp) Equal(other Operation) bool {
	x, ok := other.(*ImageOp)
	return ok && x.transform == o.transform && x.src == o.src && x.dst == o.dst &&
		x.opacity == o.opacity && sameInstance(x.img, o.img)
}

var (
	_ Operation = (*RectangleOp)(nil)
	_ Operation = (*EllipseOp)(nil)
	_ Operation = (*LineOp)(nil)
	_ Operation = (*GeometryOp)(nil)
	_ Operation = (*TextOp)(nil)
	_ Operation = (*ImageOp)(nil)
	_ Operation = (*CustomOp)(nil)
)
