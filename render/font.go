// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/internal/cache"
)

var (
	goRegularOnce sync.Once
	goRegular     *sfnt.Font
	goRegularErr  error

	defaultFaces = cache.New[float64, font.Face](cache.Unbounded)
)

// DefaultFace returns a Go Regular face of the given size in pixels.
//
// Faces are cached per size for the life of the process, so equal sizes
// always yield the same face and text operations using them compare equal. A font.Face is not safe for
// concurrent use; share faces only within the render goroutine.
func DefaultFace(size float64) (font.Face, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	if goRegularErr != nil {
		return nil, fmt.Errorf("render: parse go regular: %w", goRegularErr)
	}
	return defaultFaces.GetOrCreate(size, func() (font.Face, error) {
		face, err := opentype.NewFace(goRegular, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("render: new face: %w", err)
		}
		return face, nil
	})
}

// MeasureText returns the advance width and line height of s drawn with face.
func MeasureText(face font.Face, s string) visual.Size {
	if face == nil {
		return visual.Size{}
	}
	m := face.Metrics()
	return visual.Size{
		Width:  float64(font.MeasureString(face, s)) / 64,
		Height: float64(m.Ascent+m.Descent) / 64,
	}
}
