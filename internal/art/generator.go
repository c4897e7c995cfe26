package art

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/mrsinham/markforge/internal/canvas"
	"github.com/mrsinham/markforge/internal/dither"
	"github.com/mrsinham/markforge/internal/palette"
	"github.com/mrsinham/markforge/internal/rng"
)

// Options configures a single generation run.
type Options struct {
	Width      int
	Height     int
	Background color.RGBA

	// Seed fully determines the run. 0 means "draw one from system
	// entropy"; the resolved value is recorded on the Result so the run
	// can be reproduced.
	Seed int64

	Sampler SamplerConfig
	Palette *palette.Palette

	// Optional post-processing
	Dither    *dither.Config
	BW        *dither.BWMethod
	StampSeed bool

	Quiet bool
}

// Result is a completed run: the finished canvas plus the metadata needed
// to reproduce it. A run either completes fully or returns an error; no
// partially painted canvas is ever handed back.
type Result struct {
	Seed      int64
	Canvas    *canvas.Canvas
	MarkCount int
}

// ResolveSeed returns the seed itself when non-zero, otherwise a seed
// drawn from the system entropy source. Callers must record the resolved
// value for reproducibility.
func ResolveSeed(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}

	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read entropy for seed: %w", err)
	}
	resolved := int64(binary.LittleEndian.Uint64(buf[:]))
	if resolved == 0 {
		resolved = 1 // keep 0 reserved for "auto"
	}
	return resolved, nil
}

// Generate runs the full pipeline once: resolve the seed, sample the mark
// sequence, composite it onto a fresh canvas, then apply any post passes.
// All randomness flows through one owned stream; nothing global is
// touched, so independent runs can execute in parallel.
func Generate(opts Options) (*Result, error) {
	if opts.Palette == nil {
		return nil, palette.ErrEmptyPalette
	}

	seed, err := ResolveSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	c, err := canvas.New(opts.Width, opts.Height, opts.Background)
	if err != nil {
		return nil, err
	}

	rs := rng.New(seed)

	marks, err := SampleMarks(opts.Sampler, c.Bounds(), rs, opts.Palette)
	if err != nil {
		return nil, err
	}

	if err := Paint(c, marks, opts.Palette); err != nil {
		return nil, err
	}

	if opts.BW != nil {
		dither.ConvertBW(c.Image(), *opts.BW)
	}

	if opts.Dither != nil {
		// The dither pass owns a derived stream so enabling it never
		// shifts the draws that shaped the marks.
		ds := rng.New(rng.SubSeed(seed, "dither", 0))
		if err := dither.Apply(c.Image(), opts.Palette, *opts.Dither, ds); err != nil {
			return nil, err
		}
	}

	if opts.StampSeed {
		StampSeed(c.Image(), seed)
	}

	return &Result{Seed: seed, Canvas: c, MarkCount: len(marks)}, nil
}

// BatchOptions configures rendering a series of images. Each image owns
// its own stream (derived from the base seed) and canvas, so workers share
// no mutable state and the output is independent of scheduling.
type BatchOptions struct {
	Options

	Images    int    // number of images to render
	OutputDir string // PNG files are written here as markNNNN.png
	Workers   int    // 0 means runtime.NumCPU()

	// Progress, when set, is called after each finished image.
	Progress func(current, total int, path string)
}

// GeneratedFile records one written image of a batch.
type GeneratedFile struct {
	Index int
	Path  string
	Seed  int64
}

// BatchResult is a completed batch: the written files plus the resolved
// base seed that reproduces the whole series.
type BatchResult struct {
	Seed  int64
	Files []GeneratedFile
}

type imageTask struct {
	index int
	seed  int64
	path  string
}

// GenerateBatch renders opts.Images independent images in parallel and
// writes them as PNG files. The base seed is resolved once; image i uses
// the derived seed SubSeed(base, "image", i).
func GenerateBatch(opts BatchOptions) (*BatchResult, error) {
	if opts.Images <= 0 {
		return nil, fmt.Errorf("image count must be > 0, got %d", opts.Images)
	}

	baseSeed, err := ResolveSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > opts.Images {
		workers = opts.Images
	}

	if !opts.Quiet {
		fmt.Printf("Using seed: %d\n", baseSeed)
		fmt.Printf("Rendering %d images with %d workers\n", opts.Images, workers)
	}

	tasks := make([]imageTask, opts.Images)
	for i := range tasks {
		tasks[i] = imageTask{
			index: i,
			seed:  rng.SubSeed(baseSeed, "image", i),
			path:  filepath.Join(opts.OutputDir, fmt.Sprintf("mark%04d.png", i)),
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)
	files := make([]GeneratedFile, opts.Images)
	taskCh := make(chan imageTask)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				runOpts := opts.Options
				runOpts.Seed = task.seed

				err := renderToFile(runOpts, task.path)

				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("image %d: %w", task.index, err)
					}
				} else {
					files[task.index] = GeneratedFile{Index: task.index, Path: task.path, Seed: task.seed}
					done++
					if opts.Progress != nil {
						opts.Progress(done, opts.Images, task.path)
					}
				}
				mu.Unlock()
			}
		}()
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &BatchResult{Seed: baseSeed, Files: files}, nil
}

func renderToFile(opts Options, path string) error {
	opts.Quiet = true
	res, err := Generate(opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return res.Canvas.EncodePNG(f)
}
