// Package visual is the retained-mode rendering core of a GUI toolkit.
//
// # Overview
//
// A frame is described by a scene graph of draw operations. Each operation
// carries local bounds and an affine transform mapping local coordinates to
// global (surface) coordinates. Controls submit operations whenever their
// geometry changes; the scene graph diffs each submission against the
// previous frame, keeps operations that did not change, retires the ones that
// were replaced and tracks the damaged region. The renderer then repaints
// only that region through a platform drawing context.
//
// User code can plug its own drawing into a frame by implementing
// scenegraph.Drawable. A drawable that fails while rendering is reported
// through the package logger and never aborts the rest of the frame.
//
// # Quick Start
//
//	g := scenegraph.New()
//	op, _ := scenegraph.NewRectangleOp(visual.R(0, 0, 100, 40),
//	    visual.Translate(10, 10), scenegraph.Fill(color.RGBA{0, 120, 215, 255}))
//	_ = g.Append(op)
//
//	target := render.NewPixmapTarget(320, 240)
//	stats, err := scenegraph.NewRenderer().Render(target, g)
//
//	hit, ok := g.HitTest(visual.Pt(20, 20))
//
// # Packages
//
//   - visual: geometry (Point, Size, Rect, Thickness, Matrix), logging, errors
//   - render: DrawingContext, software Canvas, ImmediateContext, render targets
//   - scenegraph: draw operations, custom drawables, SceneGraph, Renderer
//   - control: collaborator controls that submit operations (ProgressBar)
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Threading
//
// Rendering is single threaded. A SceneGraph, its operations and the drawing
// context of a pass belong to the render goroutine for the whole frame.
package visual

// Version is the current version of the library.
const Version = "0.1.0"
