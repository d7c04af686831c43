// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scenegraph holds the draw operations of a rendered frame.
//
// # Operations
//
// An Operation is an immutable record of local bounds plus an affine
// transform mapping local to global coordinates. HitTest takes a global
// point, applies the inverse transform and tests the operation's local
// geometry. Any change to an operation means building a new one.
//
// Built-in operations cover rectangles, ellipses, lines, geometries, text
// and images. User code plugs in its own drawing by implementing Drawable
// and wrapping it with NewCustomOp. A CustomOp renders its drawable inside
// an error barrier: a returned error or a panic is logged through
// visual.Logger at error level and the rest of the frame carries on.
//
// # Frames
//
// A SceneGraph groups operations into nodes, one per visual, painted in the
// order the nodes were created. A control re-records its node with Open:
//
//	rec, _ := g.Open(id)
//	_ = rec.Append(background)
//	_ = rec.Append(indicator)
//	_ = rec.Close()
//
// Every appended operation is compared with the one previously stored in
// the same slot. Equal operations keep the old instance and cause no
// repaint; different ones retire the old operation (closing it exactly
// once, synchronously) and damage both bounds. Renderer repaints only the
// damaged region.
//
// Hit testing walks nodes and slots in reverse paint order; the last
// painted operation under the point wins.
//
// # Thread Safety
//
// A SceneGraph and its operations belong to the render goroutine.
// None of the types in this package are safe for concurrent use.
package scenegraph
