// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"github.com/gogpu/visual"
)

// Verb is a path construction command.
type Verb uint8

// Path verbs.
const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// pointsPerVerb is the number of points each verb consumes.
var pointsPerVerb = [...]int{
	VerbMoveTo:  1,
	VerbLineTo:  1,
	VerbQuadTo:  2,
	VerbCubicTo: 3,
	VerbClose:   0,
}

// flattenSteps is the number of line segments a curve is split into for
// hit testing and stroking.
const flattenSteps = 16

// kappa is the cubic Bezier control distance for a quarter circle.
const kappa = 0.5522847498307936

// Geometry is an immutable-once-built vector path in local coordinates.
//
// Build a geometry with the MoveTo/LineTo/QuadTo/CubicTo/Close methods and
// hand it to a draw operation. Operations keep a reference, so a geometry
// must not be modified after it has been submitted.
type Geometry struct {
	verbs  []Verb
	points []visual.Point
}

// NewGeometry creates an empty geometry.
func NewGeometry() *Geometry {
	return &Geometry{}
}

// MoveTo starts a new subpath at p.
func (g *Geometry) MoveTo(p visual.Point) *Geometry {
	g.verbs = append(g.verbs, VerbMoveTo)
	g.points = append(g.points, p)
	return g
}

// LineTo adds a straight segment to p.
func (g *Geometry) LineTo(p visual.Point) *Geometry {
	g.ensureStarted(p)
	g.verbs = append(g.verbs, VerbLineTo)
	g.points = append(g.points, p)
	return g
}

// QuadTo adds a quadratic Bezier curve.
func (g *Geometry) QuadTo(c, p visual.Point) *Geometry {
	g.ensureStarted(c)
	g.verbs = append(g.verbs, VerbQuadTo)
	g.points = append(g.points, c, p)
	return g
}

// CubicTo adds a cubic Bezier curve.
func (g *Geometry) CubicTo(c1, c2, p visual.Point) *Geometry {
	g.ensureStarted(c1)
	g.verbs = append(g.verbs, VerbCubicTo)
	g.points = append(g.points, c1, c2, p)
	return g
}

// Close closes the current subpath.
func (g *Geometry) Close() *Geometry {
	if len(g.verbs) > 0 && g.verbs[len(g.verbs)-1] != VerbClose {
		g.verbs = append(g.verbs, VerbClose)
	}
	return g
}

func (g *Geometry) ensureStarted(p visual.Point) {
	if len(g.verbs) == 0 {
		g.MoveTo(p)
	}
}

// IsEmpty reports whether the geometry has no segments.
func (g *Geometry) IsEmpty() bool {
	return g == nil || len(g.verbs) == 0
}

// Verbs returns the path verbs. The slice must not be modified.
func (g *Geometry) Verbs() []Verb { return g.verbs }

// Points returns the path points. The slice must not be modified.
func (g *Geometry) Points() []visual.Point { return g.points }

// Bounds returns the bounds of every point of the geometry, control
// points included.
func (g *Geometry) Bounds() visual.Rect {
	if g.IsEmpty() || len(g.points) == 0 {
		return visual.Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range g.points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return visual.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Equal reports whether both geometries describe the same path.
func (g *Geometry) Equal(other *Geometry) bool {
	if g == other {
		return true
	}
	if g == nil || other == nil ||
		len(g.verbs) != len(other.verbs) || len(g.points) != len(other.points) {
		return false
	}
	for i := range g.verbs {
		if g.verbs[i] != other.verbs[i] {
			return false
		}
	}
	for i := range g.points {
		if g.points[i] != other.points[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p is inside the geometry using the non-zero
// winding rule. Curves are flattened; open subpaths are implicitly closed.
func (g *Geometry) Contains(p visual.Point) bool {
	if g.IsEmpty() {
		return false
	}
	winding := 0
	for _, poly := range g.Flatten() {
		n := len(poly)
		for i := 0; i < n; i++ {
			a, b := poly[i], poly[(i+1)%n]
			if a.Y <= p.Y {
				if b.Y > p.Y && cross(a, b, p) > 0 {
					winding++
				}
			} else if b.Y <= p.Y && cross(a, b, p) < 0 {
				winding--
			}
		}
	}
	return winding != 0
}

func cross(a, b, p visual.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// Flatten converts the geometry into polylines, one per subpath.
func (g *Geometry) Flatten() [][]visual.Point {
	lines := g.polylines()
	out := make([][]visual.Point, len(lines))
	for i, l := range lines {
		out[i] = l.points
	}
	return out
}

// Outline returns the flattened subpaths as they are stroked: closed
// subpaths end with their first point repeated.
func (g *Geometry) Outline() [][]visual.Point {
	lines := g.polylines()
	out := make([][]visual.Point, len(lines))
	for i, l := range lines {
		out[i] = l.points
		if l.closed && l.points[0] != l.points[len(l.points)-1] {
			out[i] = append(l.points[:len(l.points):len(l.points)], l.points[0])
		}
	}
	return out
}

// polyline is one flattened subpath.
type polyline struct {
	points []visual.Point
	closed bool
}

func (g *Geometry) polylines() []polyline {
	var (
		out  []polyline
		cur  []visual.Point
		pi   int
		last visual.Point
	)
	flush := func(closed bool) {
		if len(cur) > 1 {
			out = append(out, polyline{points: cur, closed: closed})
		}
		cur = nil
	}
	for _, v := range g.verbs {
		switch v {
		case VerbMoveTo:
			flush(false)
			last = g.points[pi]
			cur = append(cur, last)
		case VerbLineTo:
			cur = reopen(cur, last)
			last = g.points[pi]
			cur = append(cur, last)
		case VerbQuadTo:
			c, end := g.points[pi], g.points[pi+1]
			cur = reopen(cur, last)
			for i := 1; i <= flattenSteps; i++ {
				cur = append(cur, quadAt(last, c, end, float64(i)/flattenSteps))
			}
			last = end
		case VerbCubicTo:
			c1, c2, end := g.points[pi], g.points[pi+1], g.points[pi+2]
			cur = reopen(cur, last)
			for i := 1; i <= flattenSteps; i++ {
				cur = append(cur, cubicAt(last, c1, c2, end, float64(i)/flattenSteps))
			}
			last = end
		case VerbClose:
			if len(cur) > 0 {
				last = cur[0]
			}
			flush(true)
		}
		pi += pointsPerVerb[v]
	}
	flush(false)
	return out
}

// reopen starts a new polyline at the current point when a segment follows Close.
func reopen(cur []visual.Point, last visual.Point) []visual.Point {
	if len(cur) == 0 {
		return append(cur, last)
	}
	return cur
}

func quadAt(p0, c, p1 visual.Point, t float64) visual.Point {
	mt := 1 - t
	return visual.Point{
		X: mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
		Y: mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
	}
}

func cubicAt(p0, c1, c2, p1 visual.Point, t float64) visual.Point {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return visual.Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

// RoundedRectangle returns the outline of r with corners rounded by radius.
// A zero radius produces a plain rectangle.
func RoundedRectangle(r visual.Rect, radius float64) *Geometry {
	g := NewGeometry()
	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)
	if radius <= 0 {
		return g.MoveTo(visual.Pt(r.X, r.Y)).
			LineTo(visual.Pt(r.Right(), r.Y)).
			LineTo(visual.Pt(r.Right(), r.Bottom())).
			LineTo(visual.Pt(r.X, r.Bottom())).
			Close()
	}
	k := radius * kappa
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
	return g.MoveTo(visual.Pt(x0+radius, y0)).
		LineTo(visual.Pt(x1-radius, y0)).
		CubicTo(visual.Pt(x1-radius+k, y0), visual.Pt(x1, y0+radius-k), visual.Pt(x1, y0+radius)).
		LineTo(visual.Pt(x1, y1-radius)).
		CubicTo(visual.Pt(x1, y1-radius+k), visual.Pt(x1-radius+k, y1), visual.Pt(x1-radius, y1)).
		LineTo(visual.Pt(x0+radius, y1)).
		CubicTo(visual.Pt(x0+radius-k, y1), visual.Pt(x0, y1-radius+k), visual.Pt(x0, y1-radius)).
		LineTo(visual.Pt(x0, y0+radius)).
		CubicTo(visual.Pt(x0, y0+radius-k), visual.Pt(x0+radius-k, y0), visual.Pt(x0+radius, y0)).
		Close()
}

// Ellipse returns the outline of the ellipse inscribed in r.
func Ellipse(r visual.Rect) *Geometry {
	c := r.Center()
	rx, ry := r.Width/2, r.Height/2
	kx, ky := rx*kappa, ry*kappa
	return NewGeometry().
		MoveTo(visual.Pt(c.X+rx, c.Y)).
		CubicTo(visual.Pt(c.X+rx, c.Y+ky), visual.Pt(c.X+kx, c.Y+ry), visual.Pt(c.X, c.Y+ry)).
		CubicTo(visual.Pt(c.X-kx, c.Y+ry), visual.Pt(c.X-rx, c.Y+ky), visual.Pt(c.X-rx, c.Y)).
		CubicTo(visual.Pt(c.X-rx, c.Y-ky), visual.Pt(c.X-kx, c.Y-ry), visual.Pt(c.X, c.Y-ry)).
		CubicTo(visual.Pt(c.X+kx, c.Y-ry), visual.Pt(c.X+rx, c.Y-ky), visual.Pt(c.X+rx, c.Y)).
		Close()
}

// reversed returns a copy of the flattened geometry with every polyline in
// reverse order, used to punch holes under the non-zero rule.
func reversed(polys [][]visual.Point) [][]visual.Point {
	out := make([][]visual.Point, len(polys))
	for i, poly := range polys {
		r := make([]visual.Point, len(poly))
		for j, p := range poly {
			r[len(poly)-1-j] = p
		}
		out[i] = r
	}
	return out
}
