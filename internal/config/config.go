// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the visualdemo configuration from TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
)

//go:embed default.toml
var defaultConfig string

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Color is a hex color such as "#0078d7".
type Color string

// RGBA parses the color.
func (c Color) RGBA() (color.RGBA, error) {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, string(c), err)
	}
	r, g, b := parsed.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Surface describes the render target.
type Surface struct {
	Width      int   `toml:"width"`
	Height     int   `toml:"height"`
	Background Color `toml:"background"`
}

// Progress describes the demo progress bar.
type Progress struct {
	Minimum    float64 `toml:"minimum"`
	Maximum    float64 `toml:"maximum"`
	ShowText   bool    `toml:"show_text"`
	TextFormat string  `toml:"text_format"`
	Track      Color   `toml:"track"`
	Indicator  Color   `toml:"indicator"`
	Text       Color   `toml:"text"`
}

// Config is the visualdemo configuration.
type Config struct {
	Frames    int      `toml:"frames"`
	OutputDir string   `toml:"output_dir"`
	LogLevel  string   `toml:"log_level"`
	Language  string   `toml:"language"`
	Surface   Surface  `toml:"surface"`
	Progress  Progress `toml:"progress"`
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	c := &Config{}
	if err := c.Load(defaultConfig); err != nil {
		return nil, fmt.Errorf("config: embedded default: %w", err)
	}
	return c, nil
}

// LoadFile returns the default configuration overlaid with the file at path.
// An empty path returns the defaults.
func LoadFile(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.Load(string(data)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Load decodes data over c and validates the result. Keys missing from
// data keep their current values.
func (c *Config) Load(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	return c.Validate()
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalid, c.Frames)
	}
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("%w: surface size %dx%d", ErrInvalid, c.Surface.Width, c.Surface.Height)
	}
	if c.Progress.Maximum < c.Progress.Minimum {
		return fmt.Errorf("%w: progress maximum %g below minimum %g", ErrInvalid, c.Progress.Maximum, c.Progress.Minimum)
	}
	for _, col := range []Color{c.Surface.Background, c.Progress.Track, c.Progress.Indicator, c.Progress.Text} {
		if _, err := col.RGBA(); err != nil {
			return err
		}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Tag(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Tag parses Language.
func (c *Config) Tag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("%w: language %q: %v", ErrInvalid, c.Language, err)
	}
	return tag, nil
}
