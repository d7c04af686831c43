// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import "github.com/gogpu/visual"

// defaultMaxDamageRects is the threshold after which damage collapses into
// a full redraw.
const defaultMaxDamageRects = 16

// damage accumulates the global regions that changed since the last frame.
type damage struct {
	rects []visual.Rect
	full  bool
	max   int
}

// add records r. Empty rectangles are ignored.
func (d *damage) add(r visual.Rect) {
	if d.full || r.IsEmpty() || !r.IsValid() {
		return
	}
	d.rects = append(d.rects, r)
	if len(d.rects) > d.max {
		d.full = true
		d.rects = d.rects[:0]
	}
}

func (d *damage) addAll() {
	d.full = true
	d.rects = d.rects[:0]
}

func (d *damage) clear() {
	d.rects = d.rects[:0]
	d.full = false
}

func (d *damage) any() bool {
	return d.full || len(d.rects) > 0
}

func (d *damage) bounds() visual.Rect {
	var u visual.Rect
	for _, r := range d.rects {
		u = u.Union(r)
	}
	return u
}
