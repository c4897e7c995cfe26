package palette

import (
	"fmt"
	"sort"
	"strings"
)

// Built-in palettes available by name when no palette file is given.
var builtins = map[string][]string{
	"mono":    {"#000000", "#ffffff"},
	"ink":     {"#0b0c10", "#1f2833", "#c5c6c7", "#66fcf1"},
	"ember":   {"#03071e", "#9d0208", "#dc2f02", "#f48c06", "#ffba08"},
	"ocean":   {"#03045e", "#0077b6", "#00b4d8", "#90e0ef", "#caf0f8"},
	"meadow":  {"#344e41", "#3a5a40", "#588157", "#a3b18a", "#dad7cd"},
	"sorbet":  {"#ef476f", "#ffd166", "#06d6a0", "#118ab2", "#073b4c"},
	"vintage": {"#eae0d5", "#c6ac8f", "#5e503f", "#22333b", "#0a0908"},
}

// DefaultName is the palette used when the caller specifies none.
const DefaultName = "sorbet"

// Builtin returns the named built-in palette.
func Builtin(name string) (*Palette, error) {
	hexes, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown palette '%s' (valid: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return FromHex(hexes...)
}

// BuiltinNames lists the built-in palette names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
