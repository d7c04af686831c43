// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package visual

import "errors"

// Geometry errors shared by every package of the module.
var (
	// ErrSingularTransform is returned when a transform is not finite or
	// cannot be inverted. Such a transform has no hit-test region.
	ErrSingularTransform = errors.New("visual: transform is not invertible")

	// ErrInvalidBounds is returned for bounds with non-finite components or
	// a negative size.
	ErrInvalidBounds = errors.New("visual: invalid bounds")
)
