package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/control"
	"github.com/gogpu/visual/internal/config"
	"github.com/gogpu/visual/render"
	"github.com/gogpu/visual/scenegraph"
)

const (
	margin    = 16.0
	pulseSize = 48.0
)

// demo owns the scene and renders it frame by frame.
type demo struct {
	cfg      *config.Config
	graph    *scenegraph.SceneGraph
	renderer *scenegraph.Renderer
	target   *render.PixmapTarget

	bar     *control.ProgressBar
	spinner *control.ProgressBar

	pulseNode  scenegraph.NodeID
	pulseColor color.Color
	flakyNode  scenegraph.NodeID
	faulty     bool
}

func newDemo(cfg *config.Config, faulty bool) (*demo, error) {
	background, err := cfg.Surface.Background.RGBA()
	if err != nil {
		return nil, err
	}
	track, err := cfg.Progress.Track.RGBA()
	if err != nil {
		return nil, err
	}
	indicator, err := cfg.Progress.Indicator.RGBA()
	if err != nil {
		return nil, err
	}
	text, err := cfg.Progress.Text.RGBA()
	if err != nil {
		return nil, err
	}
	tag, err := cfg.Tag()
	if err != nil {
		return nil, err
	}

	d := &demo{
		cfg:        cfg,
		graph:      scenegraph.New(),
		renderer:   scenegraph.NewRenderer(scenegraph.WithBackground(background)),
		target:     render.NewPixmapTarget(cfg.Surface.Width, cfg.Surface.Height),
		pulseColor: indicator,
		faulty:     faulty,
	}
	width := float64(cfg.Surface.Width)

	opts := []control.ProgressBarOption{
		control.WithRange(cfg.Progress.Minimum, cfg.Progress.Maximum),
		control.WithColors(track, indicator, text),
		control.WithLanguage(tag),
		control.WithPadding(visual.Uniform(2)),
	}
	if cfg.Progress.ShowText {
		opts = append(opts, control.WithProgressText(cfg.Progress.TextFormat))
	}
	d.bar = control.NewProgressBar(opts...)
	if err := d.bar.Arrange(visual.R(margin, margin, width-2*margin, 24)); err != nil {
		return nil, err
	}
	if err := d.bar.Attach(d.graph); err != nil {
		return nil, err
	}

	d.spinner = control.NewProgressBar(
		control.WithIndeterminate(),
		control.WithColors(track, indicator, nil),
	)
	if err := d.spinner.Arrange(visual.R(margin, 52, width-2*margin, 8)); err != nil {
		return nil, err
	}
	if err := d.spinner.Attach(d.graph); err != nil {
		return nil, err
	}

	d.pulseNode = d.graph.NewNode()
	if faulty {
		d.flakyNode = d.graph.NewNode()
	}
	d.graph.InvalidateAll()
	return d, nil
}

// Run renders every frame and returns a copy of each.
func (d *demo) Run() ([]*image.RGBA, error) {
	n := d.cfg.Frames
	frames := make([]*image.RGBA, 0, n)
	for i := range n {
		t := float64(i) / float64(max(1, n-1))
		if err := d.step(i, t); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		stats, err := d.renderer.Render(d.target, d.graph)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		visual.Logger().Info("frame rendered",
			"index", i,
			"rendered", stats.Rendered,
			"skipped", stats.Skipped,
			"damage", stats.Damage)
		frames = append(frames, d.target.Snapshot())
	}
	return frames, nil
}

// step updates the scene to position t of the animation.
func (d *demo) step(frame int, t float64) error {
	p := d.cfg.Progress
	if err := d.bar.SetValue(p.Minimum + (p.Maximum-p.Minimum)*t); err != nil {
		return err
	}
	if err := d.spinner.SetAnimationProgress(t); err != nil {
		return err
	}

	y := 68.0
	pulseOp, err := scenegraph.NewCustomOp(&pulse{
		size:  pulseSize,
		phase: math.Mod(2*t, 1),
		color: d.pulseColor,
	}, visual.Translate(margin, y))
	if err != nil {
		return err
	}
	if err := d.record(d.pulseNode, pulseOp); err != nil {
		return err
	}

	if !d.faulty {
		return nil
	}
	flakyOp, err := scenegraph.NewCustomOp(&flaky{size: pulseSize, frame: frame},
		visual.Translate(2*margin+pulseSize, y))
	if err != nil {
		return err
	}
	return d.record(d.flakyNode, flakyOp)
}

func (d *demo) record(id scenegraph.NodeID, ops ...scenegraph.Operation) error {
	rec, err := d.graph.Open(id)
	if err != nil {
		return err
	}
	for _, op := range ops {
		if err := rec.Append(op); err != nil {
			_ = rec.Close()
			return err
		}
	}
	return rec.Close()
}

// Close releases every operation of the scene.
func (d *demo) Close() error {
	n := d.graph.Len()
	if err := d.graph.Close(); err != nil {
		return err
	}
	visual.Logger().Debug("scene closed", "operations", n)
	return nil
}
