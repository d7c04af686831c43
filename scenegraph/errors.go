// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scenegraph

import (
	"errors"
	"fmt"
)

var (
	// ErrNilOperation is returned when appending a nil operation.
	ErrNilOperation = errors.New("scenegraph: nil operation")

	// ErrNilDrawable is returned by NewCustomOp for a nil drawable.
	ErrNilDrawable = errors.New("scenegraph: nil drawable")

	// ErrNilFace is returned by NewTextOp without a font face.
	ErrNilFace = errors.New("scenegraph: nil font face")

	// ErrNilImage is returned by NewImageOp without an image.
	ErrNilImage = errors.New("scenegraph: nil image")

	// ErrRecorderClosed is returned when using a Recorder after Close.
	ErrRecorderClosed = errors.New("scenegraph: recorder is closed")

	// ErrNodeRecording is returned by Open while the node already has an
	// open Recorder.
	ErrNodeRecording = errors.New("scenegraph: node is already being recorded")

	// ErrOperationInUse is returned when the same operation instance is
	// appended twice to one frame.
	ErrOperationInUse = errors.New("scenegraph: operation already appended")

	// ErrUnknownNode is returned for a node ID the graph does not hold.
	ErrUnknownNode = errors.New("scenegraph: unknown node")

	// ErrGraphClosed is returned when using a SceneGraph after Close.
	ErrGraphClosed = errors.New("scenegraph: graph is closed")

	// ErrNilGraph is returned by Renderer for a nil graph.
	ErrNilGraph = errors.New("scenegraph: nil graph")

	// ErrReentrantRender is reported when a drawable renders its own
	// operation from inside Render.
	ErrReentrantRender = errors.New("scenegraph: reentrant render")
)

// RenderError describes a drawable that failed while rendering.
type RenderError struct {
	// Drawable is the dynamic type of the failing drawable.
	Drawable string

	// Op names the failing method.
	Op string

	// Err is the returned error, or an error wrapping the panic value.
	Err error

	// Stack holds the goroutine stack when the drawable panicked.
	Stack []byte
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("scenegraph: exception in %s.%s: %v", e.Drawable, e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Panicked reports whether the drawable panicked rather than returning an error.
func (e *RenderError) Panicked() bool {
	return e.Stack != nil
}
