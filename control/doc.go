// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package control contains controls that describe their appearance as draw
// operations in a scenegraph.SceneGraph.
//
// A control embeds Visual, attaches to a graph once and then resubmits its
// node whenever a property that affects its appearance changes. Because the
// graph diffs every slot against the previous frame, a control can rebuild
// all of its operations on each change; only the ones that differ are
// repainted.
//
//	g := scenegraph.New()
//	bar := control.NewProgressBar(control.WithRange(0, 200))
//	_ = bar.Attach(g)
//	_ = bar.Arrange(visual.R(10, 10, 200, 16))
//	_ = bar.SetValue(50) // indicator covers 25% of the track
package control
