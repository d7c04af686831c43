// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

// Recorder re-records the operations of one node.
//
// Each appended operation is compared with the operation previously held in
// the same slot. An equal operation keeps the previous instance, so nothing
// is repainted; a different one replaces it and damages both bounds.
// Operations that end up unused are closed when the Recorder is closed.
type Recorder struct {
	g         *SceneGraph
	n         *node
	prev      []Operation
	next      []Operation
	retired   []Operation
	abandoned []*CustomOp
	reused    int
	done      bool
}

// Append records op in the next slot. The graph takes ownership of op:
// if an equal operation already occupies the slot, op is closed when the
// Recorder is closed.
func (r *Recorder) Append(op Operation) error {
	if r.done || r.n.detached {
		return ErrRecorderClosed
	}
	if isNil(op) {
		return ErrNilOperation
	}
	if containsOp(r.next, op) || r.heldElsewhere(op) {
		return ErrOperationInUse
	}

	i := len(r.next)
	if i < len(r.prev) {
		old := r.prev[i]
		switch {
		case sameInstance(old, op):
			r.next = append(r.next, old)
			r.reused++
			return nil
		case old.Equal(op):
			r.next = append(r.next, old)
			r.reused++
			r.discard(op, old)
			return nil
		default:
			r.g.damage.add(old.GlobalBounds())
			r.retire(old)
		}
	}
	r.next = append(r.next, op)
	r.g.damage.add(op.GlobalBounds())
	return nil
}

// heldElsewhere reports whether another node of the graph owns op.
// The node's own previous operations may be recorded again.
func (r *Recorder) heldElsewhere(op Operation) bool {
	for _, n := range r.g.nodes {
		if n != r.n && containsOp(n.ops, op) {
			return true
		}
	}
	return false
}

// Len returns the number of operations recorded so far.
func (r *Recorder) Len() int {
	return len(r.next)
}

// Reused returns how many slots kept their previous operation.
func (r *Recorder) Reused() int {
	return r.reused
}

// Close commits the recording. Slots beyond the last appended one are
// retired, and every operation that was replaced or discarded is closed.
// Close is idempotent.
func (r *Recorder) Close() error {
	if r.done {
		return nil
	}
	r.done = true
	r.n.recording = false

	if r.n.detached {
		// The node went away while recording. Its previous operations
		// were retired with it; everything else recorded is dropped.
		pending := r.retired[:0]
		for _, op := range r.retired {
			if !containsOp(r.prev, op) {
				pending = append(pending, op)
			}
		}
		r.retired = pending
		for _, op := range r.next {
			if !containsOp(r.prev, op) {
				r.retire(op)
			}
		}
		r.next = nil
	} else {
		if len(r.prev) > len(r.next) {
			for _, old := range r.prev[len(r.next):] {
				r.g.damage.add(old.GlobalBounds())
				r.retire(old)
			}
		}
		r.n.ops = r.next
	}

	for _, op := range r.retired {
		if !containsOp(r.next, op) {
			r.g.retire(op)
		}
	}
	for _, c := range r.abandoned {
		if !containsOp(r.next, c) {
			c.abandon()
		}
	}
	r.retired, r.abandoned = nil, nil
	return nil
}

func (r *Recorder) retire(op Operation) {
	if !containsOp(r.retired, op) {
		r.retired = append(r.retired, op)
	}
}

// discard drops a candidate that lost to the equal operation kept in its
// slot. A candidate sharing the kept operation's drawable is retired without
// closing the drawable.
func (r *Recorder) discard(candidate, kept Operation) {
	if c, ok := candidate.(*CustomOp); ok {
		if k, ok := kept.(*CustomOp); ok && sameInstance(c.drawable, k.drawable) {
			r.abandoned = append(r.abandoned, c)
			return
		}
	}
	r.retire(candidate)
}
