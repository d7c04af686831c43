// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPixmapTarget(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"small", 100, 100},
		{"wide", 1000, 100},
		{"tall", 100, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := NewPixmapTarget(tt.width, tt.height)

			assert.Equal(t, tt.width, target.Width())
			assert.Equal(t, tt.height, target.Height())
			assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, target.Format())
			assert.NotNil(t, target.Pixels())
			assert.Equal(t, tt.width*4, target.Stride())
		})
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 15))
	img.SetRGBA(5, 5, color.RGBA{255, 0, 0, 255})

	target := NewPixmapTargetFromImage(img)
	assert.Same(t, img, target.Image())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, target.At(5, 5))

	snap := target.Snapshot()
	img.SetRGBA(5, 5, color.RGBA{})
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, snap.RGBAAt(5, 5), "snapshot must not share memory")
}

func TestTargetImage(t *testing.T) {
	target := NewPixmapTarget(8, 4)
	img, err := TargetImage(target)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())

	img.SetRGBA(1, 1, color.RGBA{1, 2, 3, 4})
	assert.Equal(t, color.RGBA{1, 2, 3, 4}, target.At(1, 1), "image shares target memory")

	_, err = TargetImage(nil)
	assert.Error(t, err)

	_, err = TargetImage(NewPixmapTarget(0, 10))
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

type formatHandle struct {
	NullDeviceHandle
	format gputypes.TextureFormat
}

func (h formatHandle) SurfaceFormat() gputypes.TextureFormat {
	return h.format
}

func TestSurfaceTargetPresentsRGBA(t *testing.T) {
	var got SurfaceFrame
	target, err := NewSurfaceTarget(NullDeviceHandle{}, 2, 1, func(f SurfaceFrame) error {
		got = f
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, target.Format(), "undefined surface format falls back to RGBA")

	copy(target.Pixels(), []byte{10, 20, 30, 255, 40, 50, 60, 255})
	require.NoError(t, target.Present(image.Rect(0, 0, 2, 1)))

	assert.Equal(t, []byte{10, 20, 30, 255, 40, 50, 60, 255}, got.Pix)
	assert.Equal(t, 2, got.Width)
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Damage)
}

func TestSurfaceTargetSwizzlesBGRA(t *testing.T) {
	tests := []struct {
		name   string
		format gputypes.TextureFormat
	}{
		{"unorm", gputypes.TextureFormatBGRA8Unorm},
		{"srgb", gputypes.TextureFormatBGRA8UnormSrgb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []byte
			target, err := NewSurfaceTarget(formatHandle{format: tt.format}, 1, 1, func(f SurfaceFrame) error {
				got = append([]byte(nil), f.Pix...)
				assert.Equal(t, tt.format, f.Format)
				return nil
			})
			require.NoError(t, err)

			copy(target.Pixels(), []byte{1, 2, 3, 4})
			require.NoError(t, target.Present(image.Rect(0, 0, 1, 1)))
			assert.Equal(t, []byte{3, 2, 1, 4}, got)
			assert.Equal(t, []byte{1, 2, 3, 4}, target.Pixels(), "staging buffer stays RGBA")
		})
	}
}

func TestSurfaceTargetErrors(t *testing.T) {
	_, err := NewSurfaceTarget(nil, 0, 1, func(SurfaceFrame) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewSurfaceTarget(nil, 1, 1, nil)
	assert.ErrorIs(t, err, ErrNoPresentFunc)

	boom := errors.New("lost surface")
	target, err := NewSurfaceTarget(nil, 1, 1, func(SurfaceFrame) error { return boom })
	require.NoError(t, err)
	assert.ErrorIs(t, target.Present(image.Rectangle{}), boom)
}

func TestNullDeviceHandle(t *testing.T) {
	var h DeviceHandle = NullDeviceHandle{}
	assert.Nil(t, h.Device())
	assert.Nil(t, h.Queue())
	assert.Nil(t, h.Adapter())
	assert.Equal(t, gputypes.TextureFormatUndefined, h.SurfaceFormat())

	var _ gpucontext.DeviceProvider = h
}
