package storage

import (
	"fmt"
	"image/png"
	"os"

	"github.com/google/uuid"
)

// Renderer encodes an in-memory tile image and writes it to a path,
// creating the file. Suffix is the output filename extension including
// the leading dot.
type Renderer interface {
	Suffix() string
	Render(im *Image, path string) error
}

// PNGRenderer encodes tiles as PNG files.
type PNGRenderer struct{}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{}
}

func (r *PNGRenderer) Suffix() string {
	return ".png"
}

func (r *PNGRenderer) Render(im *Image, path string) error {
	rgba, err := im.ToGoImage()
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	// Write to a uniquely named temp file first, so two renders racing
	// on the same destination never share a partial file.
	tmpPath := path + ".tmp-" + uuid.NewString()
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	if err := png.Encode(f, rgba); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move tile into place: %w", err)
	}
	return nil
}

// TouchRenderer creates empty files with a configurable suffix. Useful
// for tests and dry runs where only the tree shape matters.
type TouchRenderer struct {
	suffix string
}

func NewTouchRenderer(suffix string) *TouchRenderer {
	return &TouchRenderer{suffix: suffix}
}

func (r *TouchRenderer) Suffix() string {
	return r.suffix
}

func (r *TouchRenderer) Render(im *Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f.Close()
}

// NewRenderer resolves a renderer by name.
func NewRenderer(name string) (Renderer, error) {
	switch name {
	case "png", "":
		return NewPNGRenderer(), nil
	case "vips":
		return NewVipsRenderer(), nil
	case "touch":
		return NewTouchRenderer(".png"), nil
	default:
		return nil, fmt.Errorf("unknown renderer: %s (supported: png, vips, touch)", name)
	}
}
