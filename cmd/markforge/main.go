package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/mrsinham/markforge/cmd/markforge/wizard"
	"github.com/mrsinham/markforge/internal/art"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
	})

	// Check for wizard subcommand (before flag.Parse)
	if len(os.Args) > 1 && os.Args[1] == "wizard" {
		// Extract --from flag if present
		var fromConfig string
		for i, arg := range os.Args[2:] {
			if arg == "--from" && i+3 < len(os.Args) {
				fromConfig = os.Args[i+3]
			}
		}
		if err := wizard.Run(fromConfig); err != nil {
			logger.Error("wizard failed", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Canvas flags
	width := flag.Int("width", 800, "Canvas width in pixels")
	height := flag.Int("height", 600, "Canvas height in pixels")
	background := flag.String("background", "#ffffff", "Background color (hex)")

	// Generation flags
	seed := flag.Int64("seed", 0, "Seed for reproducibility (optional, drawn from system entropy if not specified)")
	marks := flag.String("marks", "50", "Number of marks: fixed ('50') or a range ('20-80')")
	shapes := flag.String("shapes", "stroke:1,circle:1,polygon:1", "Shape distribution, e.g. 'circle:2,polygon:1'")
	placement := flag.String("placement", "uniform", "Mark placement: uniform, grid")
	scaleMin := flag.Float64("scale-min", 0, "Minimum mark scale in pixels (0 = auto)")
	scaleMax := flag.Float64("scale-max", 0, "Maximum mark scale in pixels (0 = auto)")
	opacityMin := flag.Float64("opacity-min", 0.6, "Minimum mark opacity")
	opacityMax := flag.Float64("opacity-max", 1.0, "Maximum mark opacity")

	// Palette flags
	paletteName := flag.String("palette", "", "Built-in palette name (default: sorbet)")
	paletteFile := flag.String("palette-file", "", "TOML palette file")

	// Post-processing flags
	ditherAlgo := flag.String("dither", "", "Dither the result to the palette: threshold, random, floyd-steinberg, stucki")
	ditherMetric := flag.String("dither-metric", "", "Color difference metric for dithering: rgb, lab, luv, cie94, ciede2000")
	bwMethod := flag.String("bw", "", "Convert to black and white: srgb-average, linear-average, hsl, lab, luv")
	stampSeed := flag.Bool("stamp-seed", false, "Stamp the seed in the image corner")

	// Output flags
	outFile := flag.String("out", "mark.png", "Output PNG file (single image)")
	images := flag.Int("images", 1, "Number of images to render (batch mode when > 1)")
	outputDir := flag.String("output", "mark_series", "Output directory for batch mode")
	workers := flag.Int("workers", 0, fmt.Sprintf("Number of parallel workers for batch mode (default: %d = CPU cores)", runtime.NumCPU()))

	// Config options
	configFile := flag.String("config", "", "Load configuration from YAML file")
	saveConfig := flag.String("save-config", "", "Save configuration (with the resolved seed) to YAML file after generation")

	// Interactive wizard options
	interactive := flag.Bool("interactive", false, "Launch interactive wizard")
	flag.BoolVar(interactive, "i", false, "Launch interactive wizard (shortcut)")

	quiet := flag.Bool("quiet", false, "Suppress progress output")
	showVersion := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help message")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("markforge %s\n", version)
		os.Exit(0)
	}

	if *interactive {
		if err := wizard.Run(*configFile); err != nil {
			logger.Error("wizard failed", "err", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Build the configuration: YAML file first, flags override nothing
	// when a config is given (the file is the source of truth).
	var cfg *wizard.Config
	if *configFile != "" {
		loaded, err := wizard.LoadConfig(*configFile)
		if err != nil {
			logger.Error("loading config failed", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = wizard.Defaults()
		cfg.Canvas.Width = *width
		cfg.Canvas.Height = *height
		cfg.Canvas.Background = *background
		cfg.Marks.Seed = *seed
		cfg.Marks.Count = *marks
		cfg.Marks.Shapes = *shapes
		cfg.Marks.Placement = *placement
		cfg.Marks.ScaleMin = *scaleMin
		cfg.Marks.ScaleMax = *scaleMax
		cfg.Marks.OpacityMin = *opacityMin
		cfg.Marks.OpacityMax = *opacityMax
		cfg.Palette.Name = *paletteName
		cfg.Palette.File = *paletteFile
		if cfg.Palette.File != "" {
			cfg.Palette.Name = ""
		}
		cfg.Post.Dither = *ditherAlgo
		cfg.Post.DitherMetric = *ditherMetric
		cfg.Post.BW = *bwMethod
		cfg.Post.StampSeed = *stampSeed
		cfg.Output.Path = *outFile
		cfg.Output.Images = *images
		cfg.Output.Dir = *outputDir
		cfg.Output.Workers = *workers
	}

	opts, err := wizard.ToBatchOptions(cfg)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		printUsage()
		os.Exit(1)
	}
	opts.Quiet = *quiet

	resolvedSeed, err := run(cfg, opts)
	if err != nil {
		logger.Error("generation failed", "err", err)
		os.Exit(1)
	}

	// Save config if requested, with the resolved seed recorded so the
	// saved file reproduces this exact run.
	if *saveConfig != "" {
		cfg.Marks.Seed = resolvedSeed
		if err := cfg.Save(*saveConfig); err != nil {
			logger.Warn("could not save config", "err", err)
		} else if !*quiet {
			fmt.Printf("Configuration saved to %s\n", *saveConfig)
		}
	}
}

func run(cfg *wizard.Config, opts art.BatchOptions) (int64, error) {
	if opts.Images > 1 {
		res, err := art.GenerateBatch(opts)
		if err != nil {
			return 0, err
		}
		if !opts.Quiet {
			fmt.Println("\n✓ Generation complete!")
			fmt.Printf("  Seed: %d\n", res.Seed)
			fmt.Printf("  Images: %d in %s\n", len(res.Files), opts.OutputDir)
		}
		return res.Seed, nil
	}

	res, err := art.Generate(opts.Options)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := res.Canvas.EncodePNG(f); err != nil {
		return 0, err
	}

	if !opts.Quiet {
		fmt.Printf("Using seed: %d\n", res.Seed)
		fmt.Printf("Painted %d marks\n", res.MarkCount)
		fmt.Println("\n✓ Generation complete!")
		fmt.Printf("  Output: %s\n", cfg.Output.Path)
	}
	return res.Seed, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:")
	fmt.Fprintln(os.Stderr, "  markforge [options]")
	fmt.Fprintln(os.Stderr, "  markforge wizard [--from config.yaml]")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}
