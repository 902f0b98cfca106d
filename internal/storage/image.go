package storage

import (
	"fmt"
	"image"
	"image/draw"
)

// Image is an in-memory RGBA raster. Pix holds 4 bytes per pixel in
// row-major order, which is also the buffer the hasher fingerprints.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// NewRGBA creates a width×height image filled with a single color.
func NewRGBA(width, height int, r, g, b, a uint8) *Image {
	pix := make([]byte, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return &Image{Width: width, Height: height, Pix: pix}
}

// FromGoImage converts a decoded standard-library image into an Image.
func FromGoImage(src image.Image) *Image {
	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	return &Image{Width: bounds.Dx(), Height: bounds.Dy(), Pix: rgba.Pix}
}

// ToGoImage returns a standard-library view over the pixel buffer.
func (im *Image) ToGoImage() (*image.RGBA, error) {
	if len(im.Pix) != im.Width*im.Height*4 {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d for %dx%d rgba",
			len(im.Pix), im.Width*im.Height*4, im.Width, im.Height)
	}
	return &image.RGBA{
		Pix:    im.Pix,
		Stride: im.Width * 4,
		Rect:   image.Rect(0, 0, im.Width, im.Height),
	}, nil
}
