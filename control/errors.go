// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package control

import "errors"

var (
	// ErrNotAttached is returned when submitting a visual without a graph.
	ErrNotAttached = errors.New("control: visual is not attached")

	// ErrAlreadyAttached is returned when attaching a visual twice.
	ErrAlreadyAttached = errors.New("control: visual is already attached")

	// ErrInvalidValue is returned for a non-finite range value.
	ErrInvalidValue = errors.New("control: value is not finite")
)
