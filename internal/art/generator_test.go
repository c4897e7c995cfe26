package art

import (
	"bytes"
	"crypto/sha256"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrsinham/markforge/internal/canvas"
	"github.com/mrsinham/markforge/internal/dither"
	"github.com/mrsinham/markforge/internal/palette"
	"github.com/mrsinham/markforge/internal/util"
)

func baseOptions(t *testing.T, seed int64) Options {
	t.Helper()
	pal, err := palette.Builtin("ember")
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	return Options{
		Width:      100,
		Height:     100,
		Background: color.RGBA{255, 255, 255, 255},
		Seed:       seed,
		Sampler:    SamplerConfig{Count: util.Fixed(30)},
		Palette:    pal,
		Quiet:      true,
	}
}

func bufferHash(t *testing.T, r *Result) [32]byte {
	t.Helper()
	return sha256.Sum256(r.Canvas.Export().Pix)
}

// TestGenerate_SameSeedIdentical tests the end-to-end determinism
// guarantee: two runs with the same seed and configuration produce
// hash-equal pixel buffers.
func TestGenerate_SameSeedIdentical(t *testing.T) {
	a, err := Generate(baseOptions(t, 42))
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := Generate(baseOptions(t, 42))
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if bufferHash(t, a) != bufferHash(t, b) {
		t.Error("identical seed and configuration produced different buffers")
	}
	if a.Seed != 42 || b.Seed != 42 {
		t.Errorf("resolved seeds = %d, %d, want 42", a.Seed, b.Seed)
	}
}

// TestGenerate_DifferentSeedsDiffer tests that different seeds yield
// different images.
func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	a, err := Generate(baseOptions(t, 42))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	b, err := Generate(baseOptions(t, 99))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if bufferHash(t, a) == bufferHash(t, b) {
		t.Error("seeds 42 and 99 produced identical buffers")
	}
}

// TestRedCircleScenario tests the canonical scenario: one opaque red
// circle at (50, 50) with radius 10 on a 100x100 white canvas leaves a
// red pixel at the center and a white pixel at the origin.
func TestRedCircleScenario(t *testing.T) {
	pal, err := palette.FromHex("#ff0000")
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}

	cv, err := canvas.New(100, 100, color.White)
	if err != nil {
		t.Fatalf("canvas.New failed: %v", err)
	}

	m := Mark{Kind: ShapeCircle, X: 50, Y: 50, Scale: 10, Slot: 0, Opacity: 1}
	if err := Paint(cv, []Mark{m}, pal); err != nil {
		t.Fatalf("Paint failed: %v", err)
	}

	center, err := cv.At(50, 50)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if center.R != 255 || center.G > 5 || center.B > 5 {
		t.Errorf("center pixel = %v, want opaque red", center)
	}

	corner, err := cv.At(0, 0)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if corner != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner pixel = %v, want white", corner)
	}
}

// TestGenerate_AutoSeed tests that seed 0 resolves to a recorded non-zero
// seed that reproduces the run.
func TestGenerate_AutoSeed(t *testing.T) {
	opts := baseOptions(t, 0)

	a, err := Generate(opts)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if a.Seed == 0 {
		t.Fatal("auto seed was not resolved")
	}

	opts.Seed = a.Seed
	b, err := Generate(opts)
	if err != nil {
		t.Fatalf("replay run failed: %v", err)
	}
	if bufferHash(t, a) != bufferHash(t, b) {
		t.Error("replaying the recorded seed did not reproduce the buffer")
	}
}

// TestGenerate_PostPasses tests that dither and BW passes complete and
// stay deterministic.
func TestGenerate_PostPasses(t *testing.T) {
	run := func() *Result {
		opts := baseOptions(t, 42)
		bw := dither.BWLab
		opts.BW = &bw
		opts.Dither = &dither.Config{Algorithm: dither.AlgoFloydSteinberg, Metric: palette.MetricLab}
		res, err := Generate(opts)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return res
	}

	if bufferHash(t, run()) != bufferHash(t, run()) {
		t.Error("post-processing passes broke determinism")
	}
}

// TestGenerate_StampSeed tests that stamping changes pixels but not
// determinism.
func TestGenerate_StampSeed(t *testing.T) {
	plain, err := Generate(baseOptions(t, 42))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	opts := baseOptions(t, 42)
	opts.StampSeed = true
	stamped, err := Generate(opts)
	if err != nil {
		t.Fatalf("stamped run failed: %v", err)
	}

	if bufferHash(t, plain) == bufferHash(t, stamped) {
		t.Error("seed stamp left the buffer unchanged")
	}

	again, err := Generate(opts)
	if err != nil {
		t.Fatalf("stamped rerun failed: %v", err)
	}
	if bufferHash(t, stamped) != bufferHash(t, again) {
		t.Error("stamped output not deterministic")
	}
}

func TestGenerate_InvalidOptions(t *testing.T) {
	opts := baseOptions(t, 42)
	opts.Width = 0
	if _, err := Generate(opts); err == nil {
		t.Error("expected error for zero width")
	}

	opts = baseOptions(t, 42)
	opts.Palette = nil
	if _, err := Generate(opts); err == nil {
		t.Error("expected error for nil palette")
	}
}

func TestGenerateBatch(t *testing.T) {
	dir := t.TempDir()

	opts := BatchOptions{
		Options:   baseOptions(t, 42),
		Images:    4,
		OutputDir: filepath.Join(dir, "out"),
		Workers:   2,
	}

	var progressCalls int
	opts.Progress = func(current, total int, path string) {
		progressCalls++
		if total != 4 {
			t.Errorf("progress total = %d, want 4", total)
		}
	}

	res, err := GenerateBatch(opts)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}
	if res.Seed != 42 {
		t.Errorf("batch seed = %d, want 42", res.Seed)
	}
	if len(res.Files) != 4 {
		t.Fatalf("got %d files, want 4", len(res.Files))
	}
	if progressCalls != 4 {
		t.Errorf("progress called %d times, want 4", progressCalls)
	}

	seeds := map[int64]bool{}
	for i, f := range res.Files {
		if f.Index != i {
			t.Errorf("file %d has index %d", i, f.Index)
		}
		data, err := os.ReadFile(f.Path)
		if err != nil {
			t.Fatalf("reading %s failed: %v", f.Path, err)
		}
		if len(data) == 0 {
			t.Errorf("file %s is empty", f.Path)
		}
		seeds[f.Seed] = true
	}
	if len(seeds) != 4 {
		t.Errorf("expected 4 distinct derived seeds, got %d", len(seeds))
	}
}

// TestGenerateBatch_Reproducible tests that a batch re-rendered with the
// same base seed produces byte-identical files.
func TestGenerateBatch_Reproducible(t *testing.T) {
	render := func(dir string) [][]byte {
		res, err := GenerateBatch(BatchOptions{
			Options:   baseOptions(t, 77),
			Images:    3,
			OutputDir: dir,
			Workers:   3,
		})
		if err != nil {
			t.Fatalf("GenerateBatch failed: %v", err)
		}
		out := make([][]byte, len(res.Files))
		for i, f := range res.Files {
			data, err := os.ReadFile(f.Path)
			if err != nil {
				t.Fatalf("read failed: %v", err)
			}
			out[i] = data
		}
		return out
	}

	a := render(t.TempDir())
	b := render(t.TempDir())
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			t.Errorf("image %d differs between identical batches", i)
		}
	}
}

func TestGenerateBatch_InvalidCount(t *testing.T) {
	_, err := GenerateBatch(BatchOptions{Options: baseOptions(t, 1), Images: 0, OutputDir: t.TempDir()})
	if err == nil {
		t.Error("expected error for zero image count")
	}
}
