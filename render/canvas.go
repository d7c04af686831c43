// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/visual"
)

// Canvas is a CPU DrawingContext that draws into an *image.RGBA.
//
// Fills are rasterized with anti-aliasing by golang.org/x/image/vector,
// images are resampled with golang.org/x/image/draw and text is drawn with
// golang.org/x/image/font. Clips are kept in device space; a clip pushed
// under a rotation is reduced to its axis-aligned bounds.
//
// Text honours the translation of the current transform only; glyph size
// comes from the font face.
type Canvas struct {
	dst    *image.RGBA
	z      *vector.Rasterizer
	origin image.Point
	states []canvasState
}

// canvasState is one level of the state stack.
type canvasState struct {
	transform visual.Matrix
	clip      image.Rectangle
	opacity   float64
}

// NewCanvas creates a drawing context for dst.
// The initial clip is dst.Bounds() and the initial transform the identity.
func NewCanvas(dst *image.RGBA) *Canvas {
	return &Canvas{
		dst: dst,
		z:   vector.NewRasterizer(0, 0),
		states: []canvasState{{
			transform: visual.Identity(),
			clip:      dst.Bounds(),
			opacity:   1,
		}},
	}
}

// Image returns the destination image.
func (c *Canvas) Image() *image.RGBA {
	return c.dst
}

// Clear replaces the pixels of r with col, ignoring transform, clip and opacity.
func (c *Canvas) Clear(r image.Rectangle, col color.Color) {
	r = r.Intersect(c.dst.Bounds())
	if r.Empty() || col == nil {
		return
	}
	draw.Draw(c.dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *Canvas) top() *canvasState {
	return &c.states[len(c.states)-1]
}

// FillRectangle implements DrawingContext.
func (c *Canvas) FillRectangle(r visual.Rect, radius float64, brush color.Color) {
	if r.IsEmpty() {
		return
	}
	c.FillGeometry(RoundedRectangle(r, radius), brush)
}

// StrokeRectangle implements DrawingContext.
func (c *Canvas) StrokeRectangle(r visual.Rect, radius float64, pen Pen) {
	if !pen.IsVisible() || !c.begin() {
		return
	}
	half := pen.Thickness / 2
	c.addGeometry(RoundedRectangle(r.Inflate(half), radius+half))
	if inner := r.Inflate(-half); !inner.IsEmpty() {
		c.addPolygons(reversed(RoundedRectangle(inner, math.Max(0, radius-half)).Flatten()))
	}
	c.finish(pen.Brush)
}

// FillEllipse implements DrawingContext.
func (c *Canvas) FillEllipse(r visual.Rect, brush color.Color) {
	if r.IsEmpty() {
		return
	}
	c.FillGeometry(Ellipse(r), brush)
}

// StrokeEllipse implements DrawingContext.
func (c *Canvas) StrokeEllipse(r visual.Rect, pen Pen) {
	if !pen.IsVisible() || !c.begin() {
		return
	}
	half := pen.Thickness / 2
	c.addGeometry(Ellipse(r.Inflate(half)))
	if inner := r.Inflate(-half); !inner.IsEmpty() {
		c.addPolygons(reversed(Ellipse(inner).Flatten()))
	}
	c.finish(pen.Brush)
}

// DrawLine implements DrawingContext.
func (c *Canvas) DrawLine(p0, p1 visual.Point, pen Pen) {
	if !pen.IsVisible() || !c.begin() {
		return
	}
	if quad := segmentQuad(p0, p1, pen.Thickness/2); quad != nil {
		c.addPolygons([][]visual.Point{quad})
	}
	c.finish(pen.Brush)
}

// FillGeometry implements DrawingContext.
func (c *Canvas) FillGeometry(g *Geometry, brush color.Color) {
	if g.IsEmpty() || brush == nil || !c.begin() {
		return
	}
	c.addGeometry(g)
	c.finish(brush)
}

// StrokeGeometry implements DrawingContext.
func (c *Canvas) StrokeGeometry(g *Geometry, pen Pen) {
	if g.IsEmpty() || !pen.IsVisible() || !c.begin() {
		return
	}
	half := pen.Thickness / 2
	var quads [][]visual.Point
	for _, line := range g.polylines() {
		n := len(line.points)
		segments := n - 1
		if line.closed {
			segments = n
		}
		for i := 0; i < segments; i++ {
			if quad := segmentQuad(line.points[i], line.points[(i+1)%n], half); quad != nil {
				quads = append(quads, quad)
			}
		}
	}
	c.addPolygons(quads)
	c.finish(pen.Brush)
}

// DrawText implements DrawingContext.
func (c *Canvas) DrawText(s string, origin visual.Point, face font.Face, brush color.Color) {
	top := c.top()
	if s == "" || face == nil || brush == nil || top.clip.Empty() || top.opacity <= 0 {
		return
	}
	dst, ok := c.dst.SubImage(top.clip).(*image.RGBA)
	if !ok {
		return
	}
	p := top.transform.TransformPoint(origin)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.paint(brush)),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(p.X * 64)),
			Y: fixed.Int26_6(math.Round(p.Y*64)) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
}

// DrawImage implements DrawingContext.
func (c *Canvas) DrawImage(img image.Image, src image.Rectangle, dst visual.Rect, opacity float64) {
	top := c.top()
	alpha := top.opacity * opacity
	if img == nil || src.Empty() || dst.IsEmpty() || alpha <= 0 || top.clip.Empty() {
		return
	}
	target, ok := c.dst.SubImage(top.clip).(*image.RGBA)
	if !ok {
		return
	}
	s2d := top.transform.
		Multiply(visual.Translate(dst.X, dst.Y)).
		Multiply(visual.Scale(dst.Width/float64(src.Dx()), dst.Height/float64(src.Dy()))).
		Multiply(visual.Translate(-float64(src.Min.X), -float64(src.Min.Y)))

	var opts *draw.Options
	if alpha < 1 {
		opts = &draw.Options{
			SrcMask: image.NewUniform(color.Alpha16{A: uint16(alpha * 0xffff)}),
		}
	}
	draw.BiLinear.Transform(target, s2d.Aff3(), img, src, draw.Over, opts)
}

// PushTransform implements DrawingContext.
func (c *Canvas) PushTransform(m visual.Matrix) {
	s := *c.top()
	s.transform = s.transform.Multiply(m)
	c.states = append(c.states, s)
}

// PushClip implements DrawingContext.
func (c *Canvas) PushClip(r visual.Rect) {
	s := *c.top()
	s.clip = s.clip.Intersect(s.transform.TransformRect(r).Image())
	c.states = append(c.states, s)
}

// PushOpacity implements DrawingContext.
func (c *Canvas) PushOpacity(o float64) {
	s := *c.top()
	s.opacity *= math.Max(0, math.Min(1, o))
	c.states = append(c.states, s)
}

// Pop implements DrawingContext.
func (c *Canvas) Pop() {
	if len(c.states) > 1 {
		c.states = c.states[:len(c.states)-1]
	}
}

// Level implements DrawingContext.
func (c *Canvas) Level() int {
	return len(c.states) - 1
}

// RestoreTo implements DrawingContext.
func (c *Canvas) RestoreTo(level int) {
	if level < 0 {
		level = 0
	}
	if level < len(c.states)-1 {
		c.states = c.states[:level+1]
	}
}

// Transform implements DrawingContext.
func (c *Canvas) Transform() visual.Matrix {
	return c.top().transform
}

// Clip returns the current clip in device pixels.
func (c *Canvas) Clip() image.Rectangle {
	return c.top().clip
}

// begin prepares the rasterizer for the current clip.
// It returns false when nothing can be drawn.
func (c *Canvas) begin() bool {
	top := c.top()
	if top.clip.Empty() || top.opacity <= 0 {
		return false
	}
	c.origin = top.clip.Min
	c.z.Reset(top.clip.Dx(), top.clip.Dy())
	c.z.DrawOp = draw.Over
	return true
}

func (c *Canvas) device(p visual.Point) (float32, float32) {
	d := c.top().transform.TransformPoint(p)
	return float32(d.X - float64(c.origin.X)), float32(d.Y - float64(c.origin.Y))
}

func (c *Canvas) addGeometry(g *Geometry) {
	pts := g.points
	pi := 0
	open := false
	for _, v := range g.verbs {
		switch v {
		case VerbMoveTo:
			if open {
				c.z.ClosePath()
			}
			c.z.MoveTo(c.device(pts[pi]))
			open = true
		case VerbLineTo:
			c.z.LineTo(c.device(pts[pi]))
		case VerbQuadTo:
			bx, by := c.device(pts[pi])
			cx, cy := c.device(pts[pi+1])
			c.z.QuadTo(bx, by, cx, cy)
		case VerbCubicTo:
			bx, by := c.device(pts[pi])
			cx, cy := c.device(pts[pi+1])
			dx, dy := c.device(pts[pi+2])
			c.z.CubeTo(bx, by, cx, cy, dx, dy)
		case VerbClose:
			c.z.ClosePath()
			open = false
		}
		pi += pointsPerVerb[v]
	}
	if open {
		c.z.ClosePath()
	}
}

func (c *Canvas) addPolygons(polys [][]visual.Point) {
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		c.z.MoveTo(c.device(poly[0]))
		for _, p := range poly[1:] {
			c.z.LineTo(c.device(p))
		}
		c.z.ClosePath()
	}
}

func (c *Canvas) finish(brush color.Color) {
	if brush == nil {
		return
	}
	clip := c.top().clip
	c.z.Draw(c.dst, clip, image.NewUniform(c.paint(brush)), image.Point{})
}

// paint returns brush with the current opacity applied.
func (c *Canvas) paint(brush color.Color) color.Color {
	o := c.top().opacity
	r, g, b, a := brush.RGBA()
	if o >= 1 {
		return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
	}
	return color.RGBA64{
		R: uint16(float64(r) * o),
		G: uint16(float64(g) * o),
		B: uint16(float64(b) * o),
		A: uint16(float64(a) * o),
	}
}

// segmentQuad returns the rectangle covering the segment a-b widened by
// half on each side, or nil for a zero-length segment.
func segmentQuad(a, b visual.Point, half float64) []visual.Point {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return nil
	}
	n := visual.Pt(-d.Y/l*half, d.X/l*half)
	return []visual.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

// Ensure Canvas implements DrawingContext.
var _ DrawingContext = (*Canvas)(nil)
