package art

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestStampSeed(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 120, 60))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{30, 30, 30, 255}), image.Point{}, draw.Src)

	before := make([]byte, len(img.Pix))
	copy(before, img.Pix)

	StampSeed(img, 424242)

	changed := false
	for i := range img.Pix {
		if img.Pix[i] != before[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("StampSeed left the image unchanged")
	}
}

// TestStampSeed_TinyCanvas tests that stamping skips canvases too small
// to fit the text instead of drawing garbage.
func TestStampSeed_TinyCanvas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	before := make([]byte, len(img.Pix))
	copy(before, img.Pix)

	StampSeed(img, 1)

	for i := range img.Pix {
		if img.Pix[i] != before[i] {
			t.Fatal("StampSeed drew on a canvas too small for the text")
		}
	}
}
