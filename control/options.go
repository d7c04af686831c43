// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package control

import (
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/text/language"

	"github.com/gogpu/visual"
)

// ProgressBarOption configures a ProgressBar at construction.
type ProgressBarOption func(*ProgressBar)

// WithRange sets the minimum and maximum. A maximum below the minimum is
// raised to the minimum.
func WithRange(minimum, maximum float64) ProgressBarOption {
	return func(p *ProgressBar) {
		if isFinite(minimum) && isFinite(maximum) {
			p.minimum = minimum
			p.maximum = max(minimum, maximum)
		}
	}
}

// WithValue sets the initial value.
func WithValue(v float64) ProgressBarOption {
	return func(p *ProgressBar) {
		if isFinite(v) {
			p.value = v
		}
	}
}

// WithOrientation sets the fill direction.
func WithOrientation(o Orientation) ProgressBarOption {
	return func(p *ProgressBar) {
		p.orientation = o
	}
}

// WithIndeterminate starts the bar in indeterminate mode.
func WithIndeterminate() ProgressBarOption {
	return func(p *ProgressBar) {
		p.indeterminate = true
	}
}

// WithProgressText shows the progress text using format. The format
// receives the value as argument 1 and the percentage as argument 2 and
// must select them with explicit indexes, as in "%.1[1]f". An empty format
// keeps DefaultProgressTextFormat.
func WithProgressText(format string) ProgressBarOption {
	return func(p *ProgressBar) {
		p.showText = true
		if format != "" {
			p.textFormat = format
		}
	}
}

// WithLanguage sets the language used to format the progress text.
func WithLanguage(tag language.Tag) ProgressBarOption {
	return func(p *ProgressBar) {
		p.lang = tag
	}
}

// WithFace sets the font face of the progress text.
func WithFace(face font.Face) ProgressBarOption {
	return func(p *ProgressBar) {
		p.face = face
	}
}

// WithColors sets the track, indicator and text colors. Nil keeps the default.
func WithColors(track, indicator, text color.Color) ProgressBarOption {
	return func(p *ProgressBar) {
		if track != nil {
			p.trackColor = track
		}
		if indicator != nil {
			p.indicatorColor = indicator
		}
		if text != nil {
			p.textColor = text
		}
	}
}

// WithPadding sets the space between the bounds and the track.
func WithPadding(t visual.Thickness) ProgressBarOption {
	return func(p *ProgressBar) {
		p.padding = t
	}
}

// WithIndicatorMargin sets the space between the track and the indicator.
func WithIndicatorMargin(t visual.Thickness) ProgressBarOption {
	return func(p *ProgressBar) {
		p.indicatorMargin = t
	}
}
