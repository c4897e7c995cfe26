// Package dither quantizes a finished canvas to its palette. It restores
// the classic error-diffusion and noise algorithms as an optional
// post-processing pass over the rendered image.
package dither

import (
	"fmt"
	"image"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mrsinham/markforge/internal/palette"
	"github.com/mrsinham/markforge/internal/rng"
)

// Algorithm selects the quantization strategy.
type Algorithm int

const (
	// AlgoThreshold snaps every pixel to its nearest palette color.
	AlgoThreshold Algorithm = iota
	// AlgoRandom jitters each channel before snapping, trading banding
	// for noise. Jitter comes from the run's random stream, so the
	// result is reproducible.
	AlgoRandom
	// AlgoFloydSteinberg diffuses quantization error over 4 neighbors.
	AlgoFloydSteinberg
	// AlgoStucki diffuses quantization error over 12 neighbors.
	AlgoStucki
)

func (a Algorithm) String() string {
	switch a {
	case AlgoThreshold:
		return "threshold"
	case AlgoRandom:
		return "random"
	case AlgoFloydSteinberg:
		return "floyd-steinberg"
	case AlgoStucki:
		return "stucki"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm parses an algorithm name as accepted on the command line.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "threshold":
		return AlgoThreshold, nil
	case "random":
		return AlgoRandom, nil
	case "floyd-steinberg", "floydsteinberg", "fs":
		return AlgoFloydSteinberg, nil
	case "stucki":
		return AlgoStucki, nil
	default:
		return 0, fmt.Errorf("unknown dither algorithm: '%s' (valid: threshold, random, floyd-steinberg, stucki)", s)
	}
}

// Config selects the algorithm and the color-difference metric used for
// nearest-color lookups.
type Config struct {
	Algorithm   Algorithm
	Metric      palette.Metric
	NoiseRadius float64 // AlgoRandom channel jitter; default 0.3
}

// Apply quantizes the image to the palette in place. The random stream is
// consumed only by AlgoRandom.
func Apply(img *image.RGBA, pal *palette.Palette, cfg Config, rs *rng.Stream) error {
	if pal == nil {
		return palette.ErrEmptyPalette
	}

	switch cfg.Algorithm {
	case AlgoThreshold:
		runThreshold(img, pal, cfg.Metric)
	case AlgoRandom:
		radius := cfg.NoiseRadius
		if radius == 0 {
			radius = 0.3
		}
		runRandom(img, pal, cfg.Metric, radius, rs)
	case AlgoFloydSteinberg:
		runDiffusion(img, pal, cfg.Metric, floydSteinbergKernel)
	case AlgoStucki:
		runDiffusion(img, pal, cfg.Metric, stuckiKernel)
	default:
		return fmt.Errorf("unknown dither algorithm: %d", int(cfg.Algorithm))
	}
	return nil
}

func pixelColor(img *image.RGBA, x, y int) colorful.Color {
	px := img.RGBAAt(x, y)
	return colorful.Color{
		R: float64(px.R) / 255,
		G: float64(px.G) / 255,
		B: float64(px.B) / 255,
	}
}

func setPixelColor(img *image.RGBA, x, y int, c colorful.Color) {
	px := img.RGBAAt(x, y)
	r, g, b := c.Clamped().RGB255()
	px.R, px.G, px.B = r, g, b
	img.SetRGBA(x, y, px)
}

func runThreshold(img *image.RGBA, pal *palette.Palette, m palette.Metric) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, c := pal.Nearest(pixelColor(img, x, y), m)
			setPixelColor(img, x, y, c)
		}
	}
}

func runRandom(img *image.RGBA, pal *palette.Palette, m palette.Metric, radius float64, rs *rng.Stream) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := pixelColor(img, x, y)
			c.R += (rs.Float64Unit()*2 - 1) * radius
			c.G += (rs.Float64Unit()*2 - 1) * radius
			c.B += (rs.Float64Unit()*2 - 1) * radius
			_, q := pal.Nearest(c.Clamped(), m)
			setPixelColor(img, x, y, q)
		}
	}
}

// diffusionTap spreads a fraction of the quantization error to a neighbor.
type diffusionTap struct {
	dx, dy int
	factor float64
}

var floydSteinbergKernel = []diffusionTap{
	{1, 0, 7.0 / 16},
	{-1, 1, 3.0 / 16},
	{0, 1, 5.0 / 16},
	{1, 1, 1.0 / 16},
}

var stuckiKernel = []diffusionTap{
	{1, 0, 8.0 / 42}, {2, 0, 4.0 / 42},
	{-2, 1, 2.0 / 42}, {-1, 1, 4.0 / 42}, {0, 1, 8.0 / 42}, {1, 1, 4.0 / 42}, {2, 1, 2.0 / 42},
	{-2, 2, 1.0 / 42}, {-1, 2, 2.0 / 42}, {0, 2, 4.0 / 42}, {1, 2, 2.0 / 42}, {2, 2, 1.0 / 42},
}

func runDiffusion(img *image.RGBA, pal *palette.Palette, m palette.Metric, kernel []diffusionTap) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Working buffer keeps accumulated error outside the byte range.
	buf := make([][3]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := pixelColor(img, bounds.Min.X+x, bounds.Min.Y+y)
			buf[y*w+x] = [3]float64{c.R, c.G, c.B}
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			before := buf[y*w+x]
			src := colorful.Color{R: before[0], G: before[1], B: before[2]}.Clamped()
			_, after := pal.Nearest(src, m)
			setPixelColor(img, bounds.Min.X+x, bounds.Min.Y+y, after)

			errR := before[0] - after.R
			errG := before[1] - after.G
			errB := before[2] - after.B

			for _, tap := range kernel {
				nx, ny := x+tap.dx, y+tap.dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				buf[ny*w+nx][0] += errR * tap.factor
				buf[ny*w+nx][1] += errG * tap.factor
				buf[ny*w+nx][2] += errB * tap.factor
			}
		}
	}
}
