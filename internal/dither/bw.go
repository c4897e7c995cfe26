package dither

import (
	"fmt"
	"image"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// BWMethod selects how a color collapses to gray. The methods differ in
// which color space the averaging or desaturation happens in, which
// changes the perceived tonal balance.
type BWMethod int

const (
	BWSrgbAverage BWMethod = iota
	BWLinearAverage
	BWHsl
	BWLab
	BWLuv
)

var bwNames = map[BWMethod]string{
	BWSrgbAverage:   "srgb-average",
	BWLinearAverage: "linear-average",
	BWHsl:           "hsl",
	BWLab:           "lab",
	BWLuv:           "luv",
}

func (m BWMethod) String() string {
	if name, ok := bwNames[m]; ok {
		return name
	}
	return fmt.Sprintf("BWMethod(%d)", int(m))
}

// ParseBWMethod parses a black-and-white method name.
func ParseBWMethod(s string) (BWMethod, error) {
	for m, name := range bwNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown bw method: '%s' (valid: srgb-average, linear-average, hsl, lab, luv)", s)
}

func (m BWMethod) toGray(c colorful.Color) colorful.Color {
	switch m {
	case BWLinearAverage:
		r, g, b := c.LinearRgb()
		v := (r + g + b) / 3
		return colorful.LinearRgb(v, v, v)
	case BWHsl:
		h, _, l := c.Hsl()
		return colorful.Hsl(h, 0, l)
	case BWLab:
		l, _, _ := c.Lab()
		return colorful.Lab(l, 0, 0)
	case BWLuv:
		l, _, _ := c.Luv()
		return colorful.Luv(l, 0, 0)
	default:
		v := (c.R + c.G + c.B) / 3
		return colorful.Color{R: v, G: v, B: v}
	}
}

// ConvertBW converts the image to grayscale in place, preserving alpha.
func ConvertBW(img *image.RGBA, m BWMethod) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			setPixelColor(img, x, y, m.toGray(pixelColor(img, x, y)))
		}
	}
}
