// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"fmt"

	"github.com/gogpu/visual"
)

// NodeID identifies a group of operations owned by one visual.
type NodeID uint64

// RootNode is created with every graph and painted below all other nodes.
const RootNode NodeID = 0

type node struct {
	id        NodeID
	ops       []Operation
	recording bool
	detached  bool
}

// SceneGraph is the ordered collection of draw operations making up a frame.
//
// Operations are grouped into nodes painted in creation order; within a node
// they are painted in slot order. The graph owns every operation it holds
// and closes each one exactly once when it is retired.
type SceneGraph struct {
	opts   graphOptions
	nodes  []*node
	index  map[NodeID]*node
	nextID NodeID
	damage damage
	closed bool
}

// New creates an empty graph holding only the root node.
func New(opts ...Option) *SceneGraph {
	o := defaultGraphOptions()
	for _, opt := range opts {
		opt(&o)
	}
	root := &node{id: RootNode}
	return &SceneGraph{
		opts:   o,
		nodes:  []*node{root},
		index:  map[NodeID]*node{RootNode: root},
		nextID: RootNode + 1,
		damage: damage{max: o.maxDamageRects},
	}
}

// NewNode adds an empty node above every existing node and returns its ID.
func (g *SceneGraph) NewNode() NodeID {
	id := g.nextID
	g.nextID++
	n := &node{id: id}
	g.nodes = append(g.nodes, n)
	g.index[id] = n
	return id
}

// Open starts re-recording the operations of node id.
// The node keeps its current operations until the Recorder is closed.
func (g *SceneGraph) Open(id NodeID) (*Recorder, error) {
	if g.closed {
		return nil, ErrGraphClosed
	}
	n, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	if n.recording {
		return nil, fmt.Errorf("%w: %d", ErrNodeRecording, id)
	}
	n.recording = true
	return &Recorder{g: g, n: n, prev: n.ops}, nil
}

// Append adds op on top of the root node without diffing.
func (g *SceneGraph) Append(op Operation) error {
	if g.closed {
		return ErrGraphClosed
	}
	if isNil(op) {
		return ErrNilOperation
	}
	root := g.index[RootNode]
	if root.recording {
		return fmt.Errorf("%w: %d", ErrNodeRecording, RootNode)
	}
	for _, n := range g.nodes {
		if containsOp(n.ops, op) {
			return ErrOperationInUse
		}
	}
	root.ops = append(root.ops, op)
	g.damage.add(op.GlobalBounds())
	return nil
}

// Detach removes node id and retires its operations. Detaching the root
// node only clears it.
func (g *SceneGraph) Detach(id NodeID) error {
	n, ok := g.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	g.retireAll(n.ops)
	n.ops = nil
	if id == RootNode {
		return nil
	}
	n.detached = true
	delete(g.index, id)
	for i, x := range g.nodes {
		if x == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
	return nil
}

// Close retires every operation. The graph cannot be used afterwards.
func (g *SceneGraph) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	for _, n := range g.nodes {
		g.retireAll(n.ops)
		n.ops = nil
		n.detached = true
	}
	g.nodes = nil
	g.index = map[NodeID]*node{}
	g.damage.clear()
	return nil
}

// Len returns the number of operations in the frame.
func (g *SceneGraph) Len() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.ops)
	}
	return count
}

// Operations returns every operation in paint order.
func (g *SceneGraph) Operations() []Operation {
	out := make([]Operation, 0, g.Len())
	for _, n := range g.nodes {
		out = append(out, n.ops...)
	}
	return out
}

// NodeOperations returns the operations of node id in slot order.
func (g *SceneGraph) NodeOperations(id NodeID) []Operation {
	n, ok := g.index[id]
	if !ok {
		return nil
	}
	return append([]Operation(nil), n.ops...)
}

// HitTest returns the topmost operation hit by the global point p.
func (g *SceneGraph) HitTest(p visual.Point) (Operation, bool) {
	for i := len(g.nodes) - 1; i >= 0; i-- {
		ops := g.nodes[i].ops
		for j := len(ops) - 1; j >= 0; j-- {
			if ops[j].HitTest(p) {
				return ops[j], true
			}
		}
	}
	return nil, false
}

// HitTestAll returns every operation hit by p, topmost first.
func (g *SceneGraph) HitTestAll(p visual.Point) []Operation {
	var hits []Operation
	for i := len(g.nodes) - 1; i >= 0; i-- {
		ops := g.nodes[i].ops
		for j := len(ops) - 1; j >= 0; j-- {
			if ops[j].HitTest(p) {
				hits = append(hits, ops[j])
			}
		}
	}
	return hits
}

// Invalidate marks the global region r for repaint.
func (g *SceneGraph) Invalidate(r visual.Rect) {
	g.damage.add(r)
}

// InvalidateAll marks the whole frame for repaint.
func (g *SceneGraph) InvalidateAll() {
	g.damage.addAll()
}

// Damage returns the damaged regions. It returns nil when the whole frame
// needs repainting.
func (g *SceneGraph) Damage() []visual.Rect {
	if g.damage.full {
		return nil
	}
	return append([]visual.Rect(nil), g.damage.rects...)
}

// DamageBounds returns the union of the damaged regions.
func (g *SceneGraph) DamageBounds() visual.Rect {
	return g.damage.bounds()
}

// NeedsFullRedraw reports whether the whole frame must be repainted.
func (g *SceneGraph) NeedsFullRedraw() bool {
	return g.damage.full
}

// HasDamage reports whether anything needs repainting.
func (g *SceneGraph) HasDamage() bool {
	return g.damage.any()
}

// ClearDamage forgets the accumulated damage.
func (g *SceneGraph) ClearDamage() {
	g.damage.clear()
}

func (g *SceneGraph) retireAll(ops []Operation) {
	for _, op := range ops {
		g.damage.add(op.GlobalBounds())
		g.retire(op)
	}
}

// retire closes op. Close failures are logged; the operation is gone either way.
func (g *SceneGraph) retire(op Operation) {
	if err := op.Close(); err != nil {
		visual.Logger().Warn("failed to close draw operation",
			"area", visual.AreaVisual,
			"op", typeName(op),
			"err", err)
	}
}

func containsOp(ops []Operation, op Operation) bool {
	for _, x := range ops {
		if sameInstance(x, op) {
			return true
		}
	}
	return false
}
