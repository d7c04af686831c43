// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the platform drawing surface used by the scene graph.
//
// # Core Interfaces
//
//   - DrawingContext: primitive drawing commands plus a transform, clip and
//     opacity stack. This is what a platform backend implements.
//   - Target: where rendering output goes (CPU pixmap or host surface).
//   - DeviceHandle: GPU device access provided by the host application.
//
// # Implementations
//
//   - Canvas: CPU DrawingContext over *image.RGBA, anti-aliased through
//     golang.org/x/image/vector, images through golang.org/x/image/draw and
//     text through golang.org/x/image/font.
//   - PixmapTarget: CPU-backed *image.RGBA target.
//   - SurfaceTarget: staging buffer presented to a host window surface.
//
// # Immediate Drawing
//
// Custom drawables never see a DrawingContext directly. They receive an
// ImmediateContext, a facade acquired for exactly one render call:
//
//	ic := render.Acquire(canvas)
//	defer ic.Close()
//	err := drawable.Render(ic)
//
// Close restores the platform state to the level it had at Acquire, popping
// anything the drawable left pushed, and turns every later call into a no-op
// returning ErrContextReleased.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. A Canvas and the target
// it draws into belong to the render goroutine for the duration of a frame.
package render
