package art

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// StampSeed draws "seed N" near the bottom-left corner of the image so a
// finished piece carries the seed needed to regenerate it. Text is white
// with a black outline for visibility against any palette. Uses basicfont;
// TrueType rendering via golang.org/x/image/font/opentype can be added
// later if the stamp needs scaling.
func StampSeed(img *image.RGBA, seed int64) {
	bounds := img.Bounds()
	text := fmt.Sprintf("seed %d", seed)
	face := basicfont.Face7x13

	metrics := face.Metrics()
	padding := 4
	x := bounds.Min.X + padding
	y := bounds.Max.Y - padding - metrics.Descent.Ceil()

	// Clamp tiny canvases: skip the stamp when the text cannot fit.
	textWidth := font.MeasureString(face, text).Ceil()
	if bounds.Dx() < textWidth+2*padding || bounds.Dy() < metrics.Height.Ceil()+2*padding {
		return
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(x, y),
	}

	// Black outline first
	const outline = 1
	for dx := -outline; dx <= outline; dx++ {
		for dy := -outline; dy <= outline; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawer.Dot = fixed.P(x+dx, y+dy)
			drawer.DrawString(text)
		}
	}

	// White text on top
	drawer.Src = image.NewUniform(color.White)
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)
}
