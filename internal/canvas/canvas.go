// Package canvas provides the mutable pixel buffer a generation run paints
// into, plus the export surface handed to the encoding collaborator.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// ErrInvalidDimensions is returned when a canvas is created with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("invalid canvas dimensions")

// ErrOutOfBounds is returned for pixel access outside [0,w) x [0,h).
var ErrOutOfBounds = errors.New("pixel coordinates out of bounds")

// Canvas is a width x height grid of 8-bit RGBA pixels. It is owned by a
// single generation run and mutated in place, in mark order, until export.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int
}

// Buffer is the finalized pixel buffer: row-major RGBA bytes with the
// channel layout and bit depth the encoding collaborator needs.
type Buffer struct {
	Width    int
	Height   int
	Channels int // always 4 (RGBA)
	BitDepth int // always 8
	Pix      []byte
}

// New creates a canvas filled with the background color. The background is
// forced opaque so exported buffers are fully defined. Fails with
// ErrInvalidDimensions when width or height is not positive.
func New(width, height int, background color.Color) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	r, g, b, _ := background.RGBA()
	bg := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0xff}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	return &Canvas{img: img, width: width, height: height}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas rectangle in pixel coordinates.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// At returns the pixel at (x, y), failing with ErrOutOfBounds outside the
// canvas.
func (c *Canvas) At(x, y int) (color.RGBA, error) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return color.RGBA{}, fmt.Errorf("(%d, %d) outside %dx%d: %w", x, y, c.width, c.height, ErrOutOfBounds)
	}
	return c.img.RGBAAt(x, y), nil
}

// Set writes the pixel at (x, y), failing with ErrOutOfBounds outside the
// canvas.
func (c *Canvas) Set(x, y int, col color.RGBA) error {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return fmt.Errorf("(%d, %d) outside %dx%d: %w", x, y, c.width, c.height, ErrOutOfBounds)
	}
	c.img.SetRGBA(x, y, col)
	return nil
}

// Image exposes the backing image for in-process drawing. The compositor
// paints through this; external callers should use Export.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Export returns the finished pixel buffer. The returned bytes are a copy,
// so the buffer stays valid regardless of later canvas use.
func (c *Canvas) Export() Buffer {
	pix := make([]byte, len(c.img.Pix))
	copy(pix, c.img.Pix)
	return Buffer{
		Width:    c.width,
		Height:   c.height,
		Channels: 4,
		BitDepth: 8,
		Pix:      pix,
	}
}

// EncodePNG writes the canvas as a PNG stream.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
