// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package control

import (
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/render"
	"github.com/gogpu/visual/scenegraph"
)

// Orientation is the direction in which a ProgressBar fills.
type Orientation int

const (
	// Horizontal fills from left to right.
	Horizontal Orientation = iota

	// Vertical fills from bottom to top.
	Vertical
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// DefaultProgressTextFormat prints the percentage rounded to an integer.
const DefaultProgressTextFormat = "%.0[2]f%%"

// defaultTextSize is the progress text size in pixels when no face is set.
const defaultTextSize = 12

var (
	defaultTrackColor     = color.RGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff}
	defaultIndicatorColor = color.RGBA{R: 0x00, G: 0x78, B: 0xd7, A: 0xff}
	defaultTextColor      = color.RGBA{A: 0xff}
)

// IndeterminateLayout holds the geometry of the two animated containers of
// an indeterminate bar, measured along the bar's orientation.
type IndeterminateLayout struct {
	ContainerWidth                   float64
	Container2Width                  float64
	ContainerAnimationStartPosition  float64
	ContainerAnimationEndPosition    float64
	Container2AnimationStartPosition float64
	Container2AnimationEndPosition   float64
}

// ProgressBar shows the position of a value within a range.
//
// The value is kept within [Minimum, Maximum]. Every setter that affects
// the appearance recomputes the indicator and, while attached, resubmits
// the bar's node.
type ProgressBar struct {
	Visual

	value, minimum, maximum float64
	indeterminate           bool
	orientation             Orientation
	showText                bool
	textFormat              string
	lang                    language.Tag
	printer                 *message.Printer
	face                    font.Face

	padding         visual.Thickness
	indicatorMargin visual.Thickness
	trackColor      color.Color
	indicatorColor  color.Color
	textColor       color.Color

	percentage     float64
	indicator      visual.Rect
	layout         IndeterminateLayout
	startingOffset float64
	endingOffset   float64
	animation      float64
}

// NewProgressBar creates a progress bar over [0, 100].
func NewProgressBar(opts ...ProgressBarOption) *ProgressBar {
	p := &ProgressBar{
		maximum:        100,
		textFormat:     DefaultProgressTextFormat,
		lang:           language.English,
		trackColor:     defaultTrackColor,
		indicatorColor: defaultIndicatorColor,
		textColor:      defaultTextColor,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.value = clamp(p.value, p.minimum, p.maximum)
	p.printer = message.NewPrinter(p.lang)
	p.updateIndicator()
	return p
}

// Value returns the current value.
func (p *ProgressBar) Value() float64 { return p.value }

// Minimum returns the lower end of the range.
func (p *ProgressBar) Minimum() float64 { return p.minimum }

// Maximum returns the upper end of the range.
func (p *ProgressBar) Maximum() float64 { return p.maximum }

// Percentage returns the position of the value in the range, from 0 to 100.
// It is not updated while the bar is indeterminate.
func (p *ProgressBar) Percentage() float64 { return p.percentage }

// IsIndeterminate reports whether the bar shows unquantified progress.
func (p *ProgressBar) IsIndeterminate() bool { return p.indeterminate }

// Orientation returns the fill direction.
func (p *ProgressBar) Orientation() Orientation { return p.orientation }

// Indicator returns the determinate indicator in coordinates local to the bar.
func (p *ProgressBar) Indicator() visual.Rect { return p.indicator }

// IndeterminateLayout returns the container geometry of indeterminate mode.
func (p *ProgressBar) IndeterminateLayout() IndeterminateLayout { return p.layout }

// IndeterminateStartingOffset returns the offset the indeterminate
// animation starts from, the negated track extent.
func (p *ProgressBar) IndeterminateStartingOffset() float64 { return p.startingOffset }

// IndeterminateEndingOffset returns the offset the indeterminate animation
// ends at, the track extent.
func (p *ProgressBar) IndeterminateEndingOffset() float64 { return p.endingOffset }

// ProgressText returns the formatted progress text.
func (p *ProgressBar) ProgressText() string {
	return p.printer.Sprintf(p.textFormat, p.value, p.percentage)
}

// SetValue sets the value, clamped to the range.
func (p *ProgressBar) SetValue(v float64) error {
	if !isFinite(v) {
		return ErrInvalidValue
	}
	p.value = clamp(v, p.minimum, p.maximum)
	return p.invalidate()
}

// SetMinimum sets the lower end of the range. The maximum and the value
// are raised when they fall below it.
func (p *ProgressBar) SetMinimum(v float64) error {
	if !isFinite(v) {
		return ErrInvalidValue
	}
	p.minimum = v
	p.maximum = max(p.maximum, v)
	p.value = clamp(p.value, p.minimum, p.maximum)
	return p.invalidate()
}

// SetMaximum sets the upper end of the range. A maximum below the minimum
// is raised to the minimum.
func (p *ProgressBar) SetMaximum(v float64) error {
	if !isFinite(v) {
		return ErrInvalidValue
	}
	p.maximum = max(v, p.minimum)
	p.value = clamp(p.value, p.minimum, p.maximum)
	return p.invalidate()
}

// SetIndeterminate switches between determinate and indeterminate mode.
func (p *ProgressBar) SetIndeterminate(on bool) error {
	p.indeterminate = on
	return p.invalidate()
}

// SetOrientation sets the fill direction.
func (p *ProgressBar) SetOrientation(o Orientation) error {
	p.orientation = o
	return p.invalidate()
}

// SetShowProgressText shows or hides the progress text.
func (p *ProgressBar) SetShowProgressText(show bool) error {
	p.showText = show
	return p.invalidate()
}

// SetProgressTextFormat sets the format of the progress text. See
// WithProgressText.
func (p *ProgressBar) SetProgressTextFormat(format string) error {
	if format == "" {
		format = DefaultProgressTextFormat
	}
	p.textFormat = format
	return p.invalidate()
}

// SetAnimationProgress moves the indeterminate containers to position t of
// their animation, clamped to [0, 1]. It has no visible effect while the bar
// is determinate.
func (p *ProgressBar) SetAnimationProgress(t float64) error {
	if !isFinite(t) {
		return ErrInvalidValue
	}
	p.animation = clamp(t, 0, 1)
	if !p.indeterminate {
		return nil
	}
	return p.submit()
}

// Arrange places the bar at r, in global coordinates.
func (p *ProgressBar) Arrange(r visual.Rect) error {
	if !r.IsValid() {
		return visual.ErrInvalidBounds
	}
	p.bounds = r
	return p.invalidate()
}

// Attach attaches the bar to g and submits its operations.
func (p *ProgressBar) Attach(g *scenegraph.SceneGraph) error {
	if err := p.Visual.Attach(g); err != nil {
		return err
	}
	return p.submit()
}

func (p *ProgressBar) invalidate() error {
	p.updateIndicator()
	return p.submit()
}

// track returns the area inside the padding, in local coordinates.
func (p *ProgressBar) track() visual.Rect {
	return visual.R(0, 0, p.bounds.Width, p.bounds.Height).Deflate(p.padding)
}

func (p *ProgressBar) updateIndicator() {
	bar := p.track()
	m := p.indicatorMargin

	if p.indeterminate {
		dim := bar.Width
		if p.orientation == Vertical {
			dim = bar.Height
		}
		w1 := dim * 0.4
		w2 := dim * 0.6
		p.layout = IndeterminateLayout{
			ContainerWidth:                   w1,
			Container2Width:                  w2,
			ContainerAnimationStartPosition:  w1 * -1.8,
			ContainerAnimationEndPosition:    w1 * 3.0,
			Container2AnimationStartPosition: w2 * -1.5,
			Container2AnimationEndPosition:   w2 * 1.66,
		}
		p.startingOffset = -dim
		p.endingOffset = dim
		return
	}

	percent := 1.0
	if p.maximum != p.minimum {
		percent = (p.value - p.minimum) / (p.maximum - p.minimum)
	}
	if p.orientation == Horizontal {
		w := math.Max(0, (bar.Width-m.Left-m.Right)*percent)
		p.indicator = visual.R(bar.X+m.Left, bar.Y+m.Top, w, math.Max(0, bar.Height-m.Top-m.Bottom))
	} else {
		h := math.Max(0, (bar.Height-m.Top-m.Bottom)*percent)
		p.indicator = visual.R(bar.X+m.Left, bar.Bottom()-m.Bottom-h, math.Max(0, bar.Width-m.Left-m.Right), h)
	}
	p.percentage = percent * 100
}

// containers returns the two indeterminate containers at the current
// animation position, clipped to the track.
func (p *ProgressBar) containers() (visual.Rect, visual.Rect) {
	bar := p.track()
	l := p.layout
	t := p.animation
	pos1 := l.ContainerAnimationStartPosition + (l.ContainerAnimationEndPosition-l.ContainerAnimationStartPosition)*t
	pos2 := l.Container2AnimationStartPosition + (l.Container2AnimationEndPosition-l.Container2AnimationStartPosition)*t

	var c1, c2 visual.Rect
	if p.orientation == Horizontal {
		c1 = visual.R(bar.X+pos1, bar.Y, l.ContainerWidth, bar.Height)
		c2 = visual.R(bar.X+pos2, bar.Y, l.Container2Width, bar.Height)
	} else {
		c1 = visual.R(bar.X, bar.Bottom()-pos1-l.ContainerWidth, bar.Width, l.ContainerWidth)
		c2 = visual.R(bar.X, bar.Bottom()-pos2-l.Container2Width, bar.Width, l.Container2Width)
	}
	return c1.Intersect(bar), c2.Intersect(bar)
}

// submit rebuilds the bar's operations. The slot layout is stable: track,
// then the indicator (or both indeterminate containers), then the text.
func (p *ProgressBar) submit() error {
	if !p.Attached() {
		return nil
	}
	m := visual.Translate(p.bounds.X, p.bounds.Y)
	err := p.Submit(func(rec *scenegraph.Recorder) error {
		local := visual.R(0, 0, p.bounds.Width, p.bounds.Height)
		if err := appendRect(rec, local, m, p.trackColor); err != nil {
			return err
		}
		if p.indeterminate {
			c1, c2 := p.containers()
			if err := appendRect(rec, c1, m, p.indicatorColor); err != nil {
				return err
			}
			return appendRect(rec, c2, m, p.indicatorColor)
		}
		if err := appendRect(rec, p.indicator, m, p.indicatorColor); err != nil {
			return err
		}
		if !p.showText {
			return nil
		}
		return p.appendText(rec, local, m)
	})
	if err != nil {
		return err
	}
	visual.Logger().Debug("progress bar submitted",
		"area", visual.AreaControl,
		"node", p.Node(),
		"percentage", p.percentage,
		"indeterminate", p.indeterminate)
	return nil
}

func (p *ProgressBar) appendText(rec *scenegraph.Recorder, local visual.Rect, m visual.Matrix) error {
	face := p.face
	if face == nil {
		var err error
		if face, err = render.DefaultFace(defaultTextSize); err != nil {
			return err
		}
		p.face = face
	}
	text := p.ProgressText()
	size := render.MeasureText(face, text)
	origin := visual.Pt(
		local.X+(local.Width-size.Width)/2,
		local.Y+(local.Height-size.Height)/2,
	)
	op, err := scenegraph.NewTextOp(text, origin, face, m, scenegraph.Fill(p.textColor))
	if err != nil {
		return err
	}
	return rec.Append(op)
}

func appendRect(rec *scenegraph.Recorder, r visual.Rect, m visual.Matrix, c color.Color) error {
	op, err := scenegraph.NewRectangleOp(r, m, scenegraph.Fill(c))
	if err != nil {
		return err
	}
	return rec.Append(op)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
