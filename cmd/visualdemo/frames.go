package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// writeFrames encodes frames as frame-NNN.png files in dir, in parallel.
func writeFrames(dir string, frames []*image.RGBA) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var writes errgroup.Group
	writes.SetLimit(runtime.GOMAXPROCS(0))
	for i, img := range frames {
		path := filepath.Join(dir, fmt.Sprintf("frame-%03d.png", i))
		writes.Go(func() error {
			return savePNG(path, img)
		})
	}
	return writes.Wait()
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
