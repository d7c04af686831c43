// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFaceIsCachedPerSize(t *testing.T) {
	a, err := DefaultFace(14)
	require.NoError(t, err)
	b, err := DefaultFace(14)
	require.NoError(t, err)
	c, err := DefaultFace(20)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)

	for size := 30.0; size < 60; size++ {
		_, err := DefaultFace(size)
		require.NoError(t, err)
	}
	again, err := DefaultFace(14)
	require.NoError(t, err)
	assert.Same(t, a, again, "many other sizes must not drop an earlier face")
}

func TestMeasureText(t *testing.T) {
	face, err := DefaultFace(12)
	require.NoError(t, err)

	short := MeasureText(face, "1%")
	long := MeasureText(face, "100%")
	assert.Greater(t, long.Width, short.Width)
	assert.Greater(t, short.Height, 0.0)
	assert.Equal(t, short.Height, long.Height)

	assert.Zero(t, MeasureText(nil, "x"))
}
