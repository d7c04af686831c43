// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// Target errors.
var (
	// ErrNoCPUAccess is returned when a target exposes no pixel memory.
	ErrNoCPUAccess = errors.New("render: target does not support CPU rendering")

	// ErrInvalidDimensions is returned for a target with a non-positive size.
	ErrInvalidDimensions = errors.New("render: invalid dimensions")

	// ErrNoPresentFunc is returned when a surface target has nowhere to present.
	ErrNoPresentFunc = errors.New("render: surface target has no present func")
)

// Target defines where rendering output goes.
//
// Pixels always exposes 8-bit premultiplied RGBA memory that a Canvas can
// draw into. Format reports the pixel format the target hands to its
// consumer, which may differ (a BGRA window surface, for example).
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the presentation pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns the RGBA pixel memory, or nil for targets without CPU access.
	Pixels() []byte

	// Stride returns the number of bytes per row of Pixels.
	Stride() int
}

// Presenter is implemented by targets that need to be told when a frame
// is complete. damage is the region that changed, in device pixels.
type Presenter interface {
	Present(damage image.Rectangle) error
}

// TargetImage returns an *image.RGBA sharing memory with the target.
func TargetImage(t Target) (*image.RGBA, error) {
	if t == nil {
		return nil, errors.New("render: nil target")
	}
	if t.Width() <= 0 || t.Height() <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, t.Width(), t.Height())
	}
	pix := t.Pixels()
	if pix == nil {
		return nil, ErrNoCPUAccess
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: t.Stride(),
		Rect:   image.Rect(0, 0, t.Width(), t.Height()),
	}, nil
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	stats, err := renderer.Render(target, graph)
//	img := target.Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Snapshot returns a copy of the current pixels.
func (t *PixmapTarget) Snapshot() *image.RGBA {
	cp := image.NewRGBA(t.img.Bounds())
	copy(cp.Pix, t.img.Pix)
	return cp
}

// At returns the color at the given coordinates.
func (t *PixmapTarget) At(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// Ensure PixmapTarget implements Target.
var _ Target = (*PixmapTarget)(nil)

// SurfaceFrame is what a SurfaceTarget hands to the host on Present.
type SurfaceFrame struct {
	// Pix holds the frame in Format, Stride bytes per row.
	// It is only valid for the duration of the PresentFunc call.
	Pix    []byte
	Stride int
	Width  int
	Height int
	Format gputypes.TextureFormat

	// Damage is the region that changed since the previous frame.
	Damage image.Rectangle
}

// PresentFunc uploads a finished frame to the host window surface.
type PresentFunc func(frame SurfaceFrame) error

// SurfaceTarget renders into a CPU staging buffer and presents finished
// frames to a window surface owned by the host application.
//
// The presentation format follows the host device: BGRA surfaces get the
// staging pixels swizzled before the PresentFunc is called.
type SurfaceTarget struct {
	staging *image.RGBA
	out     []byte
	format  gputypes.TextureFormat
	present PresentFunc
}

// NewSurfaceTarget creates a surface target for the device of handle.
// A nil handle or an undefined surface format falls back to RGBA8.
func NewSurfaceTarget(handle DeviceHandle, width, height int, present PresentFunc) (*SurfaceTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if present == nil {
		return nil, ErrNoPresentFunc
	}
	format := gputypes.TextureFormatRGBA8Unorm
	if handle != nil {
		if f := handle.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			format = f
		}
	}
	return &SurfaceTarget{
		staging: image.NewRGBA(image.Rect(0, 0, width, height)),
		format:  format,
		present: present,
	}, nil
}

// Width returns the surface width in pixels.
func (t *SurfaceTarget) Width() int {
	return t.staging.Bounds().Dx()
}

// Height returns the surface height in pixels.
func (t *SurfaceTarget) Height() int {
	return t.staging.Bounds().Dy()
}

// Format returns the surface pixel format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat {
	return t.format
}

// Pixels returns the RGBA staging buffer.
func (t *SurfaceTarget) Pixels() []byte {
	return t.staging.Pix
}

// Stride returns the number of bytes per row of the staging buffer.
func (t *SurfaceTarget) Stride() int {
	return t.staging.Stride
}

func isBGRA(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// Present converts the staging buffer to the surface format and hands it
// to the host.
func (t *SurfaceTarget) Present(damage image.Rectangle) error {
	frame := SurfaceFrame{
		Pix:    t.staging.Pix,
		Stride: t.staging.Stride,
		Width:  t.Width(),
		Height: t.Height(),
		Format: t.format,
		Damage: damage,
	}
	if isBGRA(t.format) {
		if len(t.out) != len(t.staging.Pix) {
			t.out = make([]byte, len(t.staging.Pix))
		}
		for i := 0; i+3 < len(t.staging.Pix); i += 4 {
			t.out[i+0] = t.staging.Pix[i+2]
			t.out[i+1] = t.staging.Pix[i+1]
			t.out[i+2] = t.staging.Pix[i+0]
			t.out[i+3] = t.staging.Pix[i+3]
		}
		frame.Pix = t.out
	}
	if err := t.present(frame); err != nil {
		return fmt.Errorf("render: present surface frame: %w", err)
	}
	return nil
}

// Ensure SurfaceTarget implements Target and Presenter.
var (
	_ Target    = (*SurfaceTarget)(nil)
	_ Presenter = (*SurfaceTarget)(nil)
)
