package main

import (
	"errors"
	"image/color"
	"math"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/render"
	"github.com/gogpu/visual/scenegraph"
)

// pulse draws concentric rings whose radius follows the frame phase.
type pulse struct {
	size  float64
	phase float64
	color color.Color
}

func (p *pulse) Bounds() visual.Rect {
	return visual.R(0, 0, p.size, p.size)
}

func (p *pulse) HitTest(pt visual.Point) bool {
	c := p.Bounds().Center()
	return math.Hypot(pt.X-c.X, pt.Y-c.Y) <= p.size/2
}

func (p *pulse) Render(ctx *render.ImmediateContext) error {
	const rings = 3
	c := p.Bounds().Center()
	for i := range rings {
		t := math.Mod(p.phase+float64(i)/rings, 1)
		r := t * p.size / 2
		ring := visual.R(c.X-r, c.Y-r, 2*r, 2*r)
		pen := render.Pen{Brush: fade(p.color, 1-t), Thickness: 2}
		if err := ctx.DrawEllipse(ring, nil, pen); err != nil {
			return err
		}
	}
	return nil
}

func (p *pulse) Equal(other scenegraph.Drawable) bool {
	o, ok := other.(*pulse)
	return ok && o.size == p.size && o.phase == p.phase && o.color == p.color
}

func (p *pulse) Close() error { return nil }

func fade(c color.Color, alpha float64) color.Color {
	r, g, b, a := c.RGBA()
	k := math.Max(0, math.Min(1, alpha))
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}

var errFlaky = errors.New("flaky drawable: frame rejected")

// flaky fails on odd frames, alternating between an error and a panic.
type flaky struct {
	size  float64
	frame int
}

func (f *flaky) Bounds() visual.Rect { return visual.R(0, 0, f.size, f.size) }

func (f *flaky) HitTest(pt visual.Point) bool { return f.Bounds().Contains(pt) }

func (f *flaky) Render(ctx *render.ImmediateContext) error {
	switch f.frame % 4 {
	case 1:
		return errFlaky
	case 3:
		panic("flaky drawable: index out of range")
	}
	return ctx.DrawRectangle(f.Bounds(), 4, color.RGBA{R: 0xd9, G: 0x30, B: 0x25, A: 0xff}, render.Pen{})
}

func (f *flaky) Equal(other scenegraph.Drawable) bool {
	o, ok := other.(*flaky)
	return ok && o.size == f.size && o.frame == f.frame
}

func (f *flaky) Close() error { return nil }
