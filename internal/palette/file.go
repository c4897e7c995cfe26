package palette

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// fileEntry is one [[color]] block in a palette file. A color is given
// either as a hex string or as three normalized rgb channels.
type fileEntry struct {
	Hex    string    `toml:"hex"`
	RGB    []float64 `toml:"rgb"`
	Weight float64   `toml:"weight"`
	Name   string    `toml:"name"`
}

type paletteFile struct {
	Colors []fileEntry `toml:"color"`
}

// Parse builds a palette from TOML palette data:
//
//	[[color]]
//	hex = "#e63946"
//	weight = 2.0
//	name = "red"
//
//	[[color]]
//	rgb = [0.0, 0.2, 0.8]
func Parse(data []byte) (*Palette, error) {
	var pf paletteFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	if len(pf.Colors) == 0 {
		return nil, fmt.Errorf("parse palette: %w", ErrEmptyPalette)
	}

	entries := make([]Entry, 0, len(pf.Colors))
	for i, fc := range pf.Colors {
		c, err := fc.color()
		if err != nil {
			return nil, fmt.Errorf("palette color %d: %w", i, err)
		}
		entries = append(entries, Entry{Color: c, Weight: fc.Weight, Name: fc.Name})
	}

	return New(entries)
}

// Load reads and parses a TOML palette file.
func Load(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette file: %w", err)
	}
	return Parse(data)
}

func (fc fileEntry) color() (colorful.Color, error) {
	switch {
	case fc.Hex != "" && len(fc.RGB) > 0:
		return colorful.Color{}, fmt.Errorf("specify either hex or rgb, not both")
	case fc.Hex != "":
		c, err := colorful.Hex(fc.Hex)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("hex %q: %w", fc.Hex, err)
		}
		return c, nil
	case len(fc.RGB) == 3:
		return colorful.Color{R: fc.RGB[0], G: fc.RGB[1], B: fc.RGB[2]}.Clamped(), nil
	case len(fc.RGB) > 0:
		return colorful.Color{}, fmt.Errorf("rgb needs exactly three values, got %d", len(fc.RGB))
	default:
		return colorful.Color{}, fmt.Errorf("missing hex or rgb value")
	}
}
