package wizard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete run configuration for YAML serialization. The
// resolved seed is written back after a run so a saved config always
// reproduces the image it describes.
type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	Marks   MarksConfig   `yaml:"marks"`
	Palette PaletteConfig `yaml:"palette"`
	Post    PostConfig    `yaml:"post"`
	Output  OutputConfig  `yaml:"output"`
}

// CanvasConfig holds canvas settings.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // hex color
}

// MarksConfig holds mark sampling settings.
type MarksConfig struct {
	Seed       int64   `yaml:"seed"`
	Count      string  `yaml:"count"`  // "50" or "20-80"
	Shapes     string  `yaml:"shapes"` // "stroke:1,circle:2,polygon:1"
	ScaleMin   float64 `yaml:"scale_min"`
	ScaleMax   float64 `yaml:"scale_max"`
	OpacityMin float64 `yaml:"opacity_min"`
	OpacityMax float64 `yaml:"opacity_max"`
	Placement  string  `yaml:"placement"` // "uniform" or "grid"
}

// PaletteConfig selects a built-in palette by name or a TOML palette file.
type PaletteConfig struct {
	Name string `yaml:"name,omitempty"`
	File string `yaml:"file,omitempty"`
}

// PostConfig holds the optional post-processing passes.
type PostConfig struct {
	Dither       string `yaml:"dither,omitempty"` // "", "threshold", "random", "floyd-steinberg", "stucki"
	DitherMetric string `yaml:"dither_metric,omitempty"`
	BW           string `yaml:"bw,omitempty"` // "", "srgb-average", ...
	StampSeed    bool   `yaml:"stamp_seed"`
}

// OutputConfig holds output settings. Images > 1 switches to batch mode
// writing into Dir.
type OutputConfig struct {
	Path    string `yaml:"path"`
	Images  int    `yaml:"images"`
	Dir     string `yaml:"dir,omitempty"`
	Workers int    `yaml:"workers,omitempty"`
}

// Defaults returns the configuration the wizard starts from.
func Defaults() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:      800,
			Height:     600,
			Background: "#ffffff",
		},
		Marks: MarksConfig{
			Count:      "50",
			Shapes:     "stroke:1,circle:1,polygon:1",
			OpacityMin: 0.6,
			OpacityMax: 1.0,
			Placement:  "uniform",
		},
		Palette: PaletteConfig{Name: "sorbet"},
		Output: OutputConfig{
			Path:   "mark.png",
			Images: 1,
			Dir:    "mark_series",
		},
	}
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
