// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/render"
)

// Stats reports what a frame render did.
type Stats struct {
	// Rendered counts operations that were painted.
	Rendered int

	// Skipped counts operations outside the damaged region.
	Skipped int

	// Damage is the repainted region in device pixels.
	Damage image.Rectangle
}

// Renderer paints the damaged part of a SceneGraph.
//
// Only operations intersecting the damage are rendered, each at most once
// per frame, in paint order, clipped to the damage. A frame without damage
// paints nothing.
type Renderer struct {
	background color.Color
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{background: color.Transparent}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render repaints the damaged region of g into target and clears the damage.
// Targets implementing render.Presenter are presented afterwards.
func (r *Renderer) Render(target render.Target, g *SceneGraph) (Stats, error) {
	if g == nil {
		return Stats{}, ErrNilGraph
	}
	if g.closed {
		return Stats{}, ErrGraphClosed
	}
	img, err := render.TargetImage(target)
	if err != nil {
		return Stats{}, fmt.Errorf("scenegraph: render target: %w", err)
	}
	if !g.HasDamage() {
		return Stats{Skipped: g.Len()}, nil
	}

	region := img.Bounds()
	if !g.NeedsFullRedraw() {
		region = g.DamageBounds().Image().Intersect(region)
	}

	canvas := render.NewCanvas(img)
	canvas.Clear(region, r.background)
	stats := r.RenderTo(canvas, g, visual.RectFromImage(region))
	stats.Damage = region
	g.ClearDamage()

	visual.Logger().Debug("frame rendered",
		"rendered", stats.Rendered,
		"skipped", stats.Skipped,
		"damage", region)

	if p, ok := target.(render.Presenter); ok && !region.Empty() {
		if err := p.Present(region); err != nil {
			return stats, fmt.Errorf("scenegraph: present: %w", err)
		}
	}
	return stats, nil
}

// RenderTo paints every operation of g intersecting region onto ctx,
// clipped to region. It neither clears the region nor touches the damage,
// which lets other DrawingContext implementations drive their own frames.
func (r *Renderer) RenderTo(ctx render.DrawingContext, g *SceneGraph, region visual.Rect) Stats {
	var stats Stats
	if region.IsEmpty() {
		stats.Skipped = g.Len()
		return stats
	}

	base := ctx.Level()
	ctx.PushClip(region)
	for _, op := range g.Operations() {
		if !op.GlobalBounds().Intersects(region) {
			stats.Skipped++
			continue
		}
		level := ctx.Level()
		ctx.PushTransform(op.Transform())
		op.Render(ctx)
		ctx.RestoreTo(level)
		stats.Rendered++
	}
	ctx.RestoreTo(base)
	return stats
}
