package wizard

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrsinham/markforge/internal/art"
	"github.com/mrsinham/markforge/internal/dither"
)

// TestToBatchOptions_Defaults tests that the default configuration
// converts cleanly into generator options.
func TestToBatchOptions_Defaults(t *testing.T) {
	opts, err := ToBatchOptions(Defaults())
	if err != nil {
		t.Fatalf("ToBatchOptions failed: %v", err)
	}

	if opts.Width != 800 || opts.Height != 600 {
		t.Errorf("canvas = %dx%d, want 800x600", opts.Width, opts.Height)
	}
	if opts.Background != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, want opaque white", opts.Background)
	}
	if opts.Palette == nil || opts.Palette.Len() == 0 {
		t.Error("default palette not resolved")
	}
	if opts.Images != 1 {
		t.Errorf("images = %d, want 1", opts.Images)
	}
	if opts.Dither != nil || opts.BW != nil {
		t.Error("post passes should be disabled by default")
	}
}

// TestToBatchOptions_FullConfig tests the parsing of every string field.
func TestToBatchOptions_FullConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Canvas.Background = "#336699"
	cfg.Marks.Count = "20-80"
	cfg.Marks.Shapes = "circle:2,polygon:1"
	cfg.Marks.Placement = "grid"
	cfg.Post.Dither = "stucki"
	cfg.Post.DitherMetric = "ciede2000"
	cfg.Post.BW = "lab"
	cfg.Output.Images = 6
	cfg.Output.Workers = 3

	opts, err := ToBatchOptions(cfg)
	if err != nil {
		t.Fatalf("ToBatchOptions failed: %v", err)
	}

	if opts.Background != (color.RGBA{0x33, 0x66, 0x99, 255}) {
		t.Errorf("background = %v, want #336699", opts.Background)
	}
	if opts.Sampler.Count.Min != 20 || opts.Sampler.Count.Max != 80 {
		t.Errorf("count = %v, want 20-80", opts.Sampler.Count)
	}
	if opts.Sampler.Shapes[art.ShapeStroke] != 0 || opts.Sampler.Shapes[art.ShapeCircle] != 2 {
		t.Errorf("shape weights = %v", opts.Sampler.Shapes)
	}
	if opts.Sampler.Placement != art.PlaceGridJitter {
		t.Errorf("placement = %v, want grid", opts.Sampler.Placement)
	}
	if opts.Dither == nil || opts.Dither.Algorithm != dither.AlgoStucki {
		t.Errorf("dither config = %+v, want stucki", opts.Dither)
	}
	if opts.BW == nil || *opts.BW != dither.BWLab {
		t.Errorf("bw method = %v, want lab", opts.BW)
	}
	if opts.Images != 6 || opts.Workers != 3 {
		t.Errorf("images/workers = %d/%d, want 6/3", opts.Images, opts.Workers)
	}
}

// TestToBatchOptions_PaletteFile tests loading the palette from a TOML
// file instead of a built-in name.
func TestToBatchOptions_PaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pal.toml")
	data := "[[color]]\nhex = \"#ff0000\"\nweight = 2.0\n\n[[color]]\nhex = \"#0000ff\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing palette failed: %v", err)
	}

	cfg := Defaults()
	cfg.Palette = PaletteConfig{File: path}

	opts, err := ToBatchOptions(cfg)
	if err != nil {
		t.Fatalf("ToBatchOptions failed: %v", err)
	}
	if opts.Palette.Len() != 2 {
		t.Errorf("palette has %d colors, want 2", opts.Palette.Len())
	}
}

func TestToBatchOptions_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad background", func(c *Config) { c.Canvas.Background = "red" }},
		{"bad count", func(c *Config) { c.Marks.Count = "80-20" }},
		{"bad shapes", func(c *Config) { c.Marks.Shapes = "triangle:1" }},
		{"bad placement", func(c *Config) { c.Marks.Placement = "spiral" }},
		{"unknown palette", func(c *Config) { c.Palette.Name = "nope" }},
		{"palette name and file", func(c *Config) { c.Palette = PaletteConfig{Name: "mono", File: "x.toml"} }},
		{"bad dither", func(c *Config) { c.Post.Dither = "bayer" }},
		{"bad dither metric", func(c *Config) { c.Post.Dither = "threshold"; c.Post.DitherMetric = "hsv" }},
		{"bad bw", func(c *Config) { c.Post.BW = "sepia" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			if _, err := ToBatchOptions(cfg); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}
