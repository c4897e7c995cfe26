// Package palette implements the ordered, optionally weighted color set
// that mark colors are resolved from.
package palette

import (
	"errors"
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mrsinham/markforge/internal/rng"
)

// ErrEmptyPalette is returned when a palette is constructed without colors.
var ErrEmptyPalette = errors.New("empty palette")

// ErrInvalidSlot is returned when an explicit color slot is out of range.
var ErrInvalidSlot = errors.New("invalid palette slot")

// Entry is one palette color with an optional selection weight and label.
type Entry struct {
	Color  colorful.Color
	Weight float64 // 0 means "use the default weight of 1"
	Name   string
}

// Palette is an ordered set of colors. Index lookups are stable for the
// lifetime of a generation run; weighted sampling uses a cumulative table
// built once at construction.
type Palette struct {
	entries []Entry
	cum     []float64 // cumulative weights, len == len(entries)
	total   float64
}

// New constructs a palette from the given entries. Colors are clamped to
// the normalized [0, 1] channel range. Entries with weight 0 default to
// weight 1; negative weights are rejected.
func New(entries []Entry) (*Palette, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyPalette
	}

	p := &Palette{
		entries: make([]Entry, len(entries)),
		cum:     make([]float64, len(entries)),
	}

	for i, e := range entries {
		if e.Weight < 0 {
			return nil, fmt.Errorf("entry %d (%s): weight %g must be >= 0", i, e.Name, e.Weight)
		}
		if e.Weight == 0 {
			e.Weight = 1
		}
		e.Color = e.Color.Clamped()
		p.entries[i] = e
		p.total += e.Weight
		p.cum[i] = p.total
	}

	return p, nil
}

// FromHex constructs an unweighted palette from hex color strings.
func FromHex(hexes ...string) (*Palette, error) {
	entries := make([]Entry, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", h, err)
		}
		entries = append(entries, Entry{Color: c})
	}
	return New(entries)
}

// Len returns the number of colors.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the palette entries in order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Resolve maps an explicit color slot to its concrete color. The returned
// color is always within the normalized channel range.
func (p *Palette) Resolve(slot int) (colorful.Color, error) {
	if slot < 0 || slot >= len(p.entries) {
		return colorful.Color{}, fmt.Errorf("slot %d not in [0, %d): %w", slot, len(p.entries), ErrInvalidSlot)
	}
	return p.entries[slot].Color, nil
}

// SampleWeighted draws a slot proportionally to the configured weights
// using a binary search over the cumulative weight table. It returns the
// slot so callers can record it on the mark descriptor.
func (p *Palette) SampleWeighted(rs *rng.Stream) int {
	target := rs.Float64Unit() * p.total
	// Slot i owns [cum[i-1], cum[i]), so find the first cum strictly above
	// the target. target < total always holds, keeping the result in range.
	return sort.Search(len(p.cum), func(i int) bool { return p.cum[i] > target })
}
