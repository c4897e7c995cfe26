// Package art implements the generation pipeline: sampling mark
// descriptors from a seeded random stream and compositing them onto a
// canvas in draw order.
package art

import (
	"fmt"
	"strconv"
	"strings"
)

// ShapeKind is the closed set of shapes a mark can take. Rasterization
// dispatches on the kind; there is no open-ended shape registration.
type ShapeKind int

const (
	ShapeStroke ShapeKind = iota
	ShapeCircle
	ShapePolygon
)

// AllShapeKinds lists the kinds in their canonical order. Sampling iterates
// this slice, never a map, so draw order is deterministic.
var AllShapeKinds = []ShapeKind{ShapeStroke, ShapeCircle, ShapePolygon}

func (k ShapeKind) String() string {
	switch k {
	case ShapeStroke:
		return "stroke"
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// ParseShapeKind parses a single shape name.
func ParseShapeKind(s string) (ShapeKind, error) {
	for _, k := range AllShapeKinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind: '%s' (valid: stroke, circle, polygon)", s)
}

// ShapeWeights holds the discrete distribution shapes are drawn from,
// indexed by kind. Zero-weight kinds are never drawn.
type ShapeWeights [ShapePolygon + 1]float64

// UniformShapeWeights gives every shape kind equal probability.
func UniformShapeWeights() ShapeWeights {
	var w ShapeWeights
	for _, k := range AllShapeKinds {
		w[k] = 1
	}
	return w
}

// ParseShapeWeights parses a distribution like "stroke:2,circle:1" or
// "circle,polygon" (unweighted entries default to weight 1). Kinds not
// mentioned get weight 0.
func ParseShapeWeights(s string) (ShapeWeights, error) {
	var w ShapeWeights
	total := 0.0

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, weightStr, hasWeight := strings.Cut(part, ":")
		kind, err := ParseShapeKind(name)
		if err != nil {
			return ShapeWeights{}, err
		}

		weight := 1.0
		if hasWeight {
			weight, err = strconv.ParseFloat(weightStr, 64)
			if err != nil || weight < 0 {
				return ShapeWeights{}, fmt.Errorf("invalid weight for %s: '%s'", kind, weightStr)
			}
		}

		w[kind] += weight
		total += weight
	}

	if total <= 0 {
		return ShapeWeights{}, fmt.Errorf("shape distribution '%s' has no positive weights", s)
	}
	return w, nil
}

// Total returns the sum of all weights.
func (w ShapeWeights) Total() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Mark describes one procedurally generated shape. Marks are immutable
// once produced; the compositor consumes them exactly once, in Z order.
type Mark struct {
	Kind     ShapeKind
	X, Y     float64 // position in canvas space
	Scale    float64 // radius for circles/polygons, half-length for strokes
	Rotation float64 // radians
	Sides    int     // polygon vertex count, 0 otherwise
	Slot     int     // palette slot the color resolves from
	Opacity  float64 // [0, 1]
	Z        int     // sequence position, defines compositing order
}
