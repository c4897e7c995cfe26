package art

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/mrsinham/markforge/internal/canvas"
	"github.com/mrsinham/markforge/internal/palette"
)

// ErrUnsupportedShape is returned when a mark carries a shape kind the
// rasterizer does not recognize. The run aborts; no partial output is
// silently produced.
var ErrUnsupportedShape = errors.New("unsupported shape kind")

// strokeWidthRatio is the half-width of a stroke relative to its scale.
const strokeWidthRatio = 0.18

// circleKappa is the cubic Bezier control distance approximating a
// quarter circle.
const circleKappa = 0.5522847498307933

// Paint composites the marks onto the canvas in sequence order. Later
// marks always dominate earlier ones at overlapping pixels; this strict
// ordering is part of the contract, not an implementation detail.
//
// Each mark's shape is rasterized to antialiased coverage and blended as
// dst = src*srcAlpha*cov + dst*(1 - srcAlpha*cov), per channel. Marks
// fully outside the canvas are skipped without error.
func Paint(c *canvas.Canvas, marks []Mark, pal *palette.Palette) error {
	if pal == nil {
		return palette.ErrEmptyPalette
	}

	img := c.Image()
	bounds := img.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())

	for _, m := range marks {
		if m.Kind < ShapeStroke || m.Kind > ShapePolygon {
			return fmt.Errorf("mark %d: kind %d: %w", m.Z, int(m.Kind), ErrUnsupportedShape)
		}

		if !markBBox(m).Overlaps(bounds) {
			continue // fully outside the canvas, deliberate no-op
		}

		col, err := pal.Resolve(m.Slot)
		if err != nil {
			return fmt.Errorf("mark %d: %w", m.Z, err)
		}

		r.Reset(bounds.Dx(), bounds.Dy())
		appendShapePath(r, m)

		cr, cg, cb := col.RGB255()
		src := image.NewUniform(color.NRGBA{
			R: cr,
			G: cg,
			B: cb,
			A: uint8(math.Round(clamp01(m.Opacity) * 255)),
		})
		r.Draw(img, bounds, src, image.Point{})
	}

	return nil
}

// markBBox returns the axis-aligned pixel box the mark can touch,
// conservative across rotation.
func markBBox(m Mark) image.Rectangle {
	radius := m.Scale * math.Sqrt2 // covers rotated corners
	return image.Rect(
		int(math.Floor(m.X-radius)),
		int(math.Floor(m.Y-radius)),
		int(math.Ceil(m.X+radius))+1,
		int(math.Ceil(m.Y+radius))+1,
	)
}

func appendShapePath(r *vector.Rasterizer, m Mark) {
	switch m.Kind {
	case ShapeCircle:
		appendCircle(r, m.X, m.Y, m.Scale)
	case ShapeStroke:
		appendRotatedRect(r, m.X, m.Y, m.Scale, m.Scale*strokeWidthRatio, m.Rotation)
	case ShapePolygon:
		sides := m.Sides
		if sides < 3 {
			sides = 3
		}
		appendRegularPolygon(r, m.X, m.Y, m.Scale, m.Rotation, sides)
	}
}

func appendCircle(r *vector.Rasterizer, cx, cy, radius float64) {
	k := circleKappa * radius
	x, y := float32(cx), float32(cy)
	rad, kf := float32(radius), float32(k)

	r.MoveTo(x+rad, y)
	r.CubeTo(x+rad, y+kf, x+kf, y+rad, x, y+rad)
	r.CubeTo(x-kf, y+rad, x-rad, y+kf, x-rad, y)
	r.CubeTo(x-rad, y-kf, x-kf, y-rad, x, y-rad)
	r.CubeTo(x+kf, y-rad, x+rad, y-kf, x+rad, y)
	r.ClosePath()
}

func appendRotatedRect(r *vector.Rasterizer, cx, cy, halfLen, halfWidth, rotation float64) {
	cos, sin := math.Cos(rotation), math.Sin(rotation)
	corners := [4][2]float64{
		{-halfLen, -halfWidth},
		{halfLen, -halfWidth},
		{halfLen, halfWidth},
		{-halfLen, halfWidth},
	}

	for i, c := range corners {
		x := float32(cx + c[0]*cos - c[1]*sin)
		y := float32(cy + c[0]*sin + c[1]*cos)
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
}

func appendRegularPolygon(r *vector.Rasterizer, cx, cy, radius, rotation float64, sides int) {
	for i := 0; i < sides; i++ {
		angle := rotation + 2*math.Pi*float64(i)/float64(sides)
		x := float32(cx + radius*math.Cos(angle))
		y := float32(cy + radius*math.Sin(angle))
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
