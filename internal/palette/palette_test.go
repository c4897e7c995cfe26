package palette

import (
	"errors"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mrsinham/markforge/internal/rng"
)

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("New(nil) error = %v, want ErrEmptyPalette", err)
	}

	_, err = New([]Entry{})
	if !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("New([]) error = %v, want ErrEmptyPalette", err)
	}
}

func TestNew_NegativeWeight(t *testing.T) {
	_, err := New([]Entry{{Color: colorful.Color{R: 1}, Weight: -0.5}})
	if err == nil {
		t.Error("expected error for negative weight")
	}
}

// TestResolve_Clamped tests that resolved colors never leave the
// normalized channel range, even when constructed out of range.
func TestResolve_Clamped(t *testing.T) {
	p, err := New([]Entry{
		{Color: colorful.Color{R: 1.5, G: -0.2, B: 0.5}},
		{Color: colorful.Color{R: 0.1, G: 0.9, B: 2.0}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for slot := 0; slot < p.Len(); slot++ {
		c, err := p.Resolve(slot)
		if err != nil {
			t.Fatalf("Resolve(%d) failed: %v", slot, err)
		}
		for _, ch := range []float64{c.R, c.G, c.B} {
			if ch < 0 || ch > 1 {
				t.Errorf("Resolve(%d) channel %g out of [0, 1]", slot, ch)
			}
		}
	}
}

func TestResolve_InvalidSlot(t *testing.T) {
	p, err := FromHex("#ff0000", "#00ff00")
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}

	for _, slot := range []int{-1, 2, 100} {
		if _, err := p.Resolve(slot); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Resolve(%d) error = %v, want ErrInvalidSlot", slot, err)
		}
	}
}

func TestSampleWeighted_Deterministic(t *testing.T) {
	p, err := FromHex("#ff0000", "#00ff00", "#0000ff")
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}

	draw := func() []int {
		rs := rng.New(42)
		out := make([]int, 50)
		for i := range out {
			out[i] = p.SampleWeighted(rs)
		}
		return out
	}

	a, b := draw(), draw()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw %d differs: %d != %d", i, a[i], b[i])
		}
	}
}

// TestSampleWeighted_Proportional tests that weights steer selection: a
// heavily weighted entry must dominate and all slots stay in range.
func TestSampleWeighted_Proportional(t *testing.T) {
	p, err := New([]Entry{
		{Color: colorful.Color{R: 1}, Weight: 9},
		{Color: colorful.Color{G: 1}, Weight: 1},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rs := rng.New(7)
	counts := [2]int{}
	for i := 0; i < 2000; i++ {
		slot := p.SampleWeighted(rs)
		if slot < 0 || slot >= p.Len() {
			t.Fatalf("SampleWeighted returned slot %d, out of range", slot)
		}
		counts[slot]++
	}

	if counts[0] <= counts[1] {
		t.Errorf("weight 9 entry drew %d times vs %d for weight 1", counts[0], counts[1])
	}
	if counts[1] == 0 {
		t.Error("weight 1 entry was never drawn in 2000 samples")
	}
}

func TestNearest(t *testing.T) {
	p, err := FromHex("#000000", "#ffffff", "#ff0000")
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}

	for _, m := range []Metric{MetricRGB, MetricLab, MetricLuv, MetricCIE94, MetricCIEDE2000} {
		slot, c := p.Nearest(colorful.Color{R: 0.95, G: 0.02, B: 0.02}, m)
		if slot != 2 {
			t.Errorf("metric %v: Nearest(almost red) = slot %d (%v), want 2", m, slot, c.Hex())
		}
	}
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("CIEDE2000")
	if err != nil || m != MetricCIEDE2000 {
		t.Errorf("ParseMetric(CIEDE2000) = %v, %v", m, err)
	}
	if _, err := ParseMetric("nope"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestParse_TOML(t *testing.T) {
	data := []byte(`
[[color]]
hex = "#e63946"
weight = 2.0
name = "red"

[[color]]
rgb = [0.0, 0.2, 0.8]
`)
	p, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}

	entries := p.Entries()
	if entries[0].Name != "red" || entries[0].Weight != 2.0 {
		t.Errorf("entry 0 = %+v, want name=red weight=2", entries[0])
	}
	if got := entries[0].Color.Hex(); got != "#e63946" {
		t.Errorf("entry 0 color = %s, want #e63946", got)
	}
	if entries[1].Color.B != 0.8 {
		t.Errorf("entry 1 blue = %g, want 0.8", entries[1].Color.B)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no colors", ``},
		{"bad hex", "[[color]]\nhex = \"red\"\n"},
		{"both hex and rgb", "[[color]]\nhex = \"#ff0000\"\nrgb = [1.0, 0.0, 0.0]\n"},
		{"short rgb", "[[color]]\nrgb = [1.0, 0.0]\n"},
		{"missing value", "[[color]]\nname = \"x\"\n"},
	}

	for _, tt := range tests {
		if _, err := Parse([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestBuiltin(t *testing.T) {
	for _, name := range BuiltinNames() {
		p, err := Builtin(name)
		if err != nil {
			t.Errorf("Builtin(%s) failed: %v", name, err)
			continue
		}
		if p.Len() < 2 {
			t.Errorf("Builtin(%s) has %d colors, want >= 2", name, p.Len())
		}
	}

	if _, err := Builtin("does-not-exist"); err == nil {
		t.Error("expected error for unknown builtin palette")
	}

	if _, err := Builtin(DefaultName); err != nil {
		t.Errorf("default palette %s missing: %v", DefaultName, err)
	}
}
