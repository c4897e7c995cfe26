package art

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/mrsinham/markforge/internal/palette"
	"github.com/mrsinham/markforge/internal/rng"
	"github.com/mrsinham/markforge/internal/util"
)

// ErrInvalidCanvas is returned when marks are sampled for a zero-area
// canvas.
var ErrInvalidCanvas = errors.New("invalid canvas bounds")

// Placement selects the spatial distribution mark positions are drawn from.
type Placement int

const (
	// PlaceUniform draws positions uniformly over the canvas.
	PlaceUniform Placement = iota
	// PlaceGridJitter places marks on a square grid with Gaussian jitter.
	PlaceGridJitter
)

// ParsePlacement parses a placement name.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "uniform", "":
		return PlaceUniform, nil
	case "grid":
		return PlaceGridJitter, nil
	default:
		return 0, fmt.Errorf("unknown placement: '%s' (valid: uniform, grid)", s)
	}
}

func (p Placement) String() string {
	if p == PlaceGridJitter {
		return "grid"
	}
	return "uniform"
}

// SamplerConfig holds the ranges and distributions mark parameters are
// drawn from. Zero values fall back to the documented defaults.
type SamplerConfig struct {
	Count        util.CountRange // number of marks; fixed when Min == Max
	Shapes       ShapeWeights    // discrete shape distribution
	ScaleMin     float64         // default 4
	ScaleMax     float64         // default 1/8 of the shorter canvas side
	RotationMax  float64         // radians, rotation drawn from [0, RotationMax); default 2*pi
	OpacityMin   float64         // default 0.6
	OpacityMax   float64         // default 1.0
	PolygonSides util.CountRange // default 3-6
	Placement    Placement
	JitterSigma  float64 // grid placement only; default half a cell
}

func (cfg *SamplerConfig) applyDefaults(bounds image.Rectangle) {
	if cfg.Count.IsZero() {
		cfg.Count = util.Fixed(50)
	}
	if cfg.Shapes.Total() == 0 {
		cfg.Shapes = UniformShapeWeights()
	}
	if cfg.ScaleMax == 0 {
		short := math.Min(float64(bounds.Dx()), float64(bounds.Dy()))
		cfg.ScaleMax = short / 8
	}
	if cfg.ScaleMin == 0 {
		cfg.ScaleMin = math.Min(4, cfg.ScaleMax)
	}
	if cfg.RotationMax == 0 {
		cfg.RotationMax = 2 * math.Pi
	}
	if cfg.OpacityMin == 0 {
		cfg.OpacityMin = 0.6
	}
	if cfg.OpacityMax == 0 {
		cfg.OpacityMax = 1.0
	}
	if cfg.PolygonSides.IsZero() {
		cfg.PolygonSides = util.CountRange{Min: 3, Max: 6}
	}
}

// Validate rejects configurations that cannot produce a well-defined draw.
func (cfg SamplerConfig) Validate() error {
	if cfg.Count.Min < 0 {
		return fmt.Errorf("mark count must be >= 0, got %s", cfg.Count)
	}
	if cfg.ScaleMin < 0 {
		return fmt.Errorf("scale must be >= 0, got %g", cfg.ScaleMin)
	}
	if cfg.ScaleMin > cfg.ScaleMax {
		return fmt.Errorf("scale range [%g, %g] has min > max", cfg.ScaleMin, cfg.ScaleMax)
	}
	if cfg.OpacityMin > cfg.OpacityMax {
		return fmt.Errorf("opacity range [%g, %g] has min > max", cfg.OpacityMin, cfg.OpacityMax)
	}
	if cfg.OpacityMin < 0 || cfg.OpacityMax > 1 {
		return fmt.Errorf("opacity range [%g, %g] must stay within [0, 1]", cfg.OpacityMin, cfg.OpacityMax)
	}
	if cfg.PolygonSides.Min != 0 && cfg.PolygonSides.Min < 3 {
		return fmt.Errorf("polygons need at least 3 sides, got %s", cfg.PolygonSides)
	}
	return nil
}

// SampleMarks draws a deterministic sequence of mark descriptors. Sequence
// order is draw order and defines the painter's order at composite time.
// Marks landing outside the canvas are still emitted so randomness
// consumption never depends on visibility.
func SampleMarks(cfg SamplerConfig, bounds image.Rectangle, rs *rng.Stream, pal *palette.Palette) ([]Mark, error) {
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%v: %w", bounds, ErrInvalidCanvas)
	}
	if pal == nil {
		return nil, palette.ErrEmptyPalette
	}
	cfg.applyDefaults(bounds)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	count, err := cfg.Count.Sample(rs)
	if err != nil {
		return nil, fmt.Errorf("sample mark count: %w", err)
	}

	gridCells := int(math.Ceil(math.Sqrt(float64(count))))
	marks := make([]Mark, 0, count)

	for i := 0; i < count; i++ {
		m := Mark{Z: i}

		m.Kind = sampleShapeKind(cfg.Shapes, rs)

		m.X, m.Y = samplePosition(cfg, bounds, rs, i, count, gridCells)

		m.Scale, err = rs.Float64InRange(cfg.ScaleMin, cfg.ScaleMax)
		if err != nil {
			return nil, fmt.Errorf("sample scale: %w", err)
		}

		m.Rotation = rs.Float64Unit() * cfg.RotationMax

		if m.Kind == ShapePolygon {
			m.Sides, err = cfg.PolygonSides.Sample(rs)
			if err != nil {
				return nil, fmt.Errorf("sample polygon sides: %w", err)
			}
		}

		m.Slot = pal.SampleWeighted(rs)

		m.Opacity, err = rs.Float64InRange(cfg.OpacityMin, cfg.OpacityMax)
		if err != nil {
			return nil, fmt.Errorf("sample opacity: %w", err)
		}

		marks = append(marks, m)
	}

	return marks, nil
}

func sampleShapeKind(w ShapeWeights, rs *rng.Stream) ShapeKind {
	target := rs.Float64Unit() * w.Total()
	acc := 0.0
	last := AllShapeKinds[0]
	for _, k := range AllShapeKinds {
		if w[k] == 0 {
			continue
		}
		acc += w[k]
		if target < acc {
			return k
		}
		last = k
	}
	// Floating point slack on the last accumulation step; fall back to
	// the last kind that actually carries weight.
	return last
}

func samplePosition(cfg SamplerConfig, bounds image.Rectangle, rs *rng.Stream, index, count, gridCells int) (float64, float64) {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	switch cfg.Placement {
	case PlaceGridJitter:
		cellW := w / float64(gridCells)
		cellH := h / float64(gridCells)
		col := index % gridCells
		row := (index / gridCells) % gridCells
		sigma := cfg.JitterSigma
		if sigma == 0 {
			sigma = math.Min(cellW, cellH) / 2
		}
		x := float64(bounds.Min.X) + (float64(col)+0.5)*cellW + rs.NormFloat64()*sigma
		y := float64(bounds.Min.Y) + (float64(row)+0.5)*cellH + rs.NormFloat64()*sigma
		return x, y
	default:
		x := float64(bounds.Min.X) + rs.Float64Unit()*w
		y := float64(bounds.Min.Y) + rs.Float64Unit()*h
		return x, y
	}
}
