// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package control

import (
	"fmt"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/scenegraph"
)

// Visual owns one node of a scene graph.
type Visual struct {
	graph  *scenegraph.SceneGraph
	node   scenegraph.NodeID
	bounds visual.Rect
}

// Attach creates the visual's node on top of g.
func (v *Visual) Attach(g *scenegraph.SceneGraph) error {
	if v.graph != nil {
		return ErrAlreadyAttached
	}
	v.graph = g
	v.node = g.NewNode()
	return nil
}

// Detach removes the visual's node from its graph, retiring its operations.
// Detaching a visual that is not attached is a no-op.
func (v *Visual) Detach() error {
	if v.graph == nil {
		return nil
	}
	err := v.graph.Detach(v.node)
	v.graph = nil
	return err
}

// Attached reports whether the visual has a graph.
func (v *Visual) Attached() bool { return v.graph != nil }

// Node returns the visual's node. It is only meaningful while attached.
func (v *Visual) Node() scenegraph.NodeID { return v.node }

// Bounds returns the arranged bounds in global coordinates.
func (v *Visual) Bounds() visual.Rect { return v.bounds }

// Submit re-records the visual's node with the operations appended by build.
// The recording is committed even when build fails, so the node holds
// whatever build appended before the error.
func (v *Visual) Submit(build func(rec *scenegraph.Recorder) error) error {
	if v.graph == nil {
		return ErrNotAttached
	}
	rec, err := v.graph.Open(v.node)
	if err != nil {
		return fmt.Errorf("control: open node %d: %w", v.node, err)
	}
	buildErr := build(rec)
	if err := rec.Close(); err != nil {
		return err
	}
	return buildErr
}
