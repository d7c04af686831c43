package main

import (
	"bytes"
	"context"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/internal/config"
)

type errorCounter struct {
	mu    sync.Mutex
	count int
}

func (c *errorCounter) Enabled(_ context.Context, l slog.Level) bool { return l >= slog.LevelError }

func (c *errorCounter) Handle(context.Context, slog.Record) error {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
	return nil
}

func (c *errorCounter) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *errorCounter) WithGroup(string) slog.Handler      { return c }

func testConfig(t *testing.T, frames int) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Frames = frames
	cfg.Surface.Width = 160
	return cfg
}

func TestDemoRun(t *testing.T) {
	errs := &errorCounter{}
	orig := visual.Logger()
	visual.SetLogger(slog.New(errs))
	t.Cleanup(func() { visual.SetLogger(orig) })

	d, err := newDemo(testConfig(t, 4), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	frames, err := d.Run()
	require.NoError(t, err)
	require.Len(t, frames, 4)
	for _, f := range frames {
		assert.Equal(t, 160, f.Bounds().Dx())
		assert.Equal(t, 120, f.Bounds().Dy())
	}
	assert.Equal(t, 2, errs.count, "flaky drawable fails on frames 1 and 3 only")

	// The last frame shows a full bar.
	last := frames[3]
	assert.Equal(t, uint8(0x00), last.RGBAAt(140, 20).R)
	assert.Equal(t, uint8(0xd7), last.RGBAAt(140, 20).B)
}

func TestDemoWithoutFaultyDrawable(t *testing.T) {
	errs := &errorCounter{}
	orig := visual.Logger()
	visual.SetLogger(slog.New(errs))
	t.Cleanup(func() { visual.SetLogger(orig) })

	d, err := newDemo(testConfig(t, 4), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	_, err = d.Run()
	require.NoError(t, err)
	assert.Zero(t, errs.count)
}

func TestWriteFrames(t *testing.T) {
	d, err := newDemo(testConfig(t, 2), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	frames, err := d.Run()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, writeFrames(dir, frames))

	for _, name := range []string{"frame-000.png", "frame-001.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		assert.Equal(t, 160, img.Bounds().Dx())
	}
}

func restoreLogger(t *testing.T) {
	t.Helper()
	orig := visual.Logger()
	t.Cleanup(func() { visual.SetLogger(orig) })
}

func TestRunClosesSceneWhenSaveFails(t *testing.T) {
	restoreLogger(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "demo.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`log_level = "debug"`), 0o600))
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	var stderr bytes.Buffer
	code := run([]string{
		"-config", cfgPath,
		"-output", filepath.Join(blocker, "out"),
		"-frames", "2",
		"-faulty=false",
	}, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Failed to save")
	assert.Contains(t, stderr.String(), "scene closed")
}

func TestRunWritesFrames(t *testing.T) {
	restoreLogger(t)
	out := filepath.Join(t.TempDir(), "frames")

	var stderr bytes.Buffer
	code := run([]string{"-output", out, "-frames", "2"}, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.FileExists(t, filepath.Join(out, "frame-000.png"))
	assert.FileExists(t, filepath.Join(out, "frame-001.png"))
	assert.Contains(t, stderr.String(), "2 frames saved")
}

func TestRunRejectsBadInput(t *testing.T) {
	restoreLogger(t)
	var stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-unknown"}, &stderr))

	stderr.Reset()
	assert.Equal(t, 1, run([]string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, &stderr))
	assert.Contains(t, stderr.String(), "Failed to load config")
}
