// Command visualdemo renders an animated frame sequence through the scene
// graph and writes every frame as a PNG.
//
// The scene holds a determinate and an indeterminate progress bar, a custom
// pulsing drawable and a drawable that fails on every other frame. Failures
// are reported through the log and never stop the sequence.
package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/visual"
	"github.com/gogpu/visual/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the demo and returns the process exit code. Every return
// path after the scene is built closes it first.
func run(args []string, stderr io.Writer) int {
	logger := log.New(stderr, "", log.LstdFlags)

	flags := flag.NewFlagSet("visualdemo", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configPath = flags.String("config", "", "TOML configuration file")
		output     = flags.String("output", "", "output directory (overrides output_dir)")
		frames     = flags.Int("frames", 0, "number of frames (overrides frames)")
		faulty     = flags.Bool("faulty", true, "include a drawable that fails while rendering")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		logger.Printf("Failed to load config: %v", err)
		return 1
	}
	if *output != "" {
		cfg.OutputDir = *output
	}
	if *frames > 0 {
		cfg.Frames = *frames
	}

	level, err := cfg.Level()
	if err != nil {
		logger.Printf("Invalid config: %v", err)
		return 1
	}
	visual.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	d, err := newDemo(cfg, *faulty)
	if err != nil {
		logger.Printf("Failed to build scene: %v", err)
		return 1
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Printf("Failed to close scene: %v", err)
		}
	}()

	captured, err := d.Run()
	if err != nil {
		logger.Printf("Failed to render: %v", err)
		return 1
	}
	if err := writeFrames(cfg.OutputDir, captured); err != nil {
		logger.Printf("Failed to save: %v", err)
		return 1
	}

	logger.Printf("%d frames saved to %s (%dx%d)\n", len(captured), cfg.OutputDir, cfg.Surface.Width, cfg.Surface.Height)
	return 0
}
