package storage

import (
	"fmt"

	"github.com/cshum/vipsgen/vips"
)

// VipsRenderer encodes tiles as PNG through libvips. Faster than the
// pure-Go encoder for large batches; requires vips.Startup to have been
// called by the host process.
type VipsRenderer struct{}

func NewVipsRenderer() *VipsRenderer {
	return &VipsRenderer{}
}

func (r *VipsRenderer) Suffix() string {
	return ".png"
}

func (r *VipsRenderer) Render(im *Image, path string) error {
	image, err := vips.NewImageFromMemory(im.Pix, im.Width, im.Height, 4)
	if err != nil {
		return fmt.Errorf("failed to wrap pixel buffer: %w", err)
	}
	defer image.Close()

	opts := vips.DefaultPngsaveOptions()
	if err := image.Pngsave(path, opts); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
