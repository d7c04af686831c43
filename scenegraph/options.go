// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import "image/color"

// Option configures a SceneGraph.
type Option func(*graphOptions)

type graphOptions struct {
	maxDamageRects int
}

func defaultGraphOptions() graphOptions {
	return graphOptions{maxDamageRects: defaultMaxDamageRects}
}

// WithMaxDamageRects sets how many damage rectangles are tracked before the
// next frame falls back to a full redraw.
func WithMaxDamageRects(n int) Option {
	return func(o *graphOptions) {
		if n > 0 {
			o.maxDamageRects = n
		}
	}
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithBackground sets the color damaged regions are cleared to before
// repainting. The default is transparent.
func WithBackground(c color.Color) RendererOption {
	return func(r *Renderer) {
		if c != nil {
			r.background = c
		}
	}
}
