package wizard

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mrsinham/markforge/internal/art"
	"github.com/mrsinham/markforge/internal/dither"
	"github.com/mrsinham/markforge/internal/palette"
	"github.com/mrsinham/markforge/internal/util"
)

// ToBatchOptions converts a validated configuration into generator
// options. All string fields are parsed here so the core packages only
// ever see typed values.
func ToBatchOptions(cfg *Config) (art.BatchOptions, error) {
	var opts art.BatchOptions

	bg, err := colorful.Hex(cfg.Canvas.Background)
	if err != nil {
		return opts, fmt.Errorf("background color %q: %w", cfg.Canvas.Background, err)
	}
	r, g, b := bg.RGB255()

	count, err := util.ParseCountRange(cfg.Marks.Count)
	if err != nil {
		return opts, fmt.Errorf("mark count: %w", err)
	}

	shapes, err := art.ParseShapeWeights(cfg.Marks.Shapes)
	if err != nil {
		return opts, fmt.Errorf("shape distribution: %w", err)
	}

	placement, err := art.ParsePlacement(cfg.Marks.Placement)
	if err != nil {
		return opts, err
	}

	pal, err := resolvePalette(cfg.Palette)
	if err != nil {
		return opts, err
	}

	opts.Options = art.Options{
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Background: color.RGBA{r, g, b, 255},
		Seed:       cfg.Marks.Seed,
		Palette:    pal,
		StampSeed:  cfg.Post.StampSeed,
		Sampler: art.SamplerConfig{
			Count:      count,
			Shapes:     shapes,
			ScaleMin:   cfg.Marks.ScaleMin,
			ScaleMax:   cfg.Marks.ScaleMax,
			OpacityMin: cfg.Marks.OpacityMin,
			OpacityMax: cfg.Marks.OpacityMax,
			Placement:  placement,
		},
	}

	if cfg.Post.Dither != "" {
		algo, err := dither.ParseAlgorithm(cfg.Post.Dither)
		if err != nil {
			return opts, err
		}
		metric := palette.MetricRGB
		if cfg.Post.DitherMetric != "" {
			metric, err = palette.ParseMetric(cfg.Post.DitherMetric)
			if err != nil {
				return opts, err
			}
		}
		opts.Dither = &dither.Config{Algorithm: algo, Metric: metric}
	}

	if cfg.Post.BW != "" {
		method, err := dither.ParseBWMethod(cfg.Post.BW)
		if err != nil {
			return opts, err
		}
		opts.BW = &method
	}

	opts.Images = cfg.Output.Images
	if opts.Images == 0 {
		opts.Images = 1
	}
	opts.OutputDir = cfg.Output.Dir
	opts.Workers = cfg.Output.Workers

	return opts, nil
}

func resolvePalette(cfg PaletteConfig) (*palette.Palette, error) {
	switch {
	case cfg.File != "" && cfg.Name != "":
		return nil, fmt.Errorf("palette: specify either name or file, not both")
	case cfg.File != "":
		return palette.Load(cfg.File)
	case cfg.Name != "":
		return palette.Builtin(cfg.Name)
	default:
		return palette.Builtin(palette.DefaultName)
	}
}
