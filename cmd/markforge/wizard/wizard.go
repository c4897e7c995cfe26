// Package wizard implements the interactive configuration flow for
// markforge: a sequence of forms collecting canvas, mark, palette and
// output settings, a styled summary, and a live progress view while the
// images render.
package wizard

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/mrsinham/markforge/internal/art"
	"github.com/mrsinham/markforge/internal/palette"
	"github.com/mrsinham/markforge/internal/util"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

// Run launches the wizard. fromConfig optionally pre-fills the forms from
// a saved YAML configuration.
func Run(fromConfig string) error {
	cfg := Defaults()
	if fromConfig != "" {
		loaded, err := LoadConfig(fromConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if err := collect(cfg); err != nil {
		return err
	}

	fmt.Println(summary(cfg))

	var confirmed bool
	confirm := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Generate with these settings?").
			Affirmative("Generate").
			Negative("Cancel").
			Value(&confirmed),
	))
	if err := confirm.Run(); err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Cancelled.")
		return nil
	}

	opts, err := ToBatchOptions(cfg)
	if err != nil {
		return err
	}

	resolvedSeed, err := runGeneration(cfg, opts)
	if err != nil {
		return err
	}

	// Write the resolved seed back so a saved config reproduces this run.
	cfg.Marks.Seed = resolvedSeed
	return offerSave(cfg)
}

// collect runs the configuration forms, binding string versions of the
// numeric fields (huh binds to strings).
func collect(cfg *Config) error {
	widthStr := strconv.Itoa(cfg.Canvas.Width)
	heightStr := strconv.Itoa(cfg.Canvas.Height)
	seedStr := strconv.FormatInt(cfg.Marks.Seed, 10)
	scaleMinStr := formatFloat(cfg.Marks.ScaleMin)
	scaleMaxStr := formatFloat(cfg.Marks.ScaleMax)
	opacityMinStr := formatFloat(cfg.Marks.OpacityMin)
	opacityMaxStr := formatFloat(cfg.Marks.OpacityMax)
	imagesStr := strconv.Itoa(cfg.Output.Images)

	paletteOptions := []huh.Option[string]{}
	for _, name := range palette.BuiltinNames() {
		paletteOptions = append(paletteOptions, huh.NewOption(name, name))
	}
	paletteOptions = append(paletteOptions, huh.NewOption("from TOML file...", ""))

	paletteName := cfg.Palette.Name

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Canvas Width").
				Value(&widthStr).
				Validate(validatePositiveInt),

			huh.NewInput().
				Title("Canvas Height").
				Value(&heightStr).
				Validate(validatePositiveInt),

			huh.NewInput().
				Title("Background Color").
				Description("Hex, e.g. #ffffff").
				Value(&cfg.Canvas.Background).
				Validate(validateHexColor),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Mark Count").
				Description("Fixed ('50') or sampled from a range ('20-80')").
				Value(&cfg.Marks.Count).
				Validate(validateCountRange),

			huh.NewInput().
				Title("Shape Distribution").
				Description("e.g. stroke:1,circle:2,polygon:1").
				Value(&cfg.Marks.Shapes).
				Validate(validateShapes),

			huh.NewSelect[string]().
				Title("Placement").
				Options(
					huh.NewOption("Uniform", "uniform"),
					huh.NewOption("Jittered grid", "grid"),
				).
				Value(&cfg.Marks.Placement),

			huh.NewInput().
				Title("Scale Min").
				Description("0 = auto").
				Value(&scaleMinStr).
				Validate(validateFloat),

			huh.NewInput().
				Title("Scale Max").
				Description("0 = auto").
				Value(&scaleMaxStr).
				Validate(validateFloat),

			huh.NewInput().
				Title("Opacity Min").
				Value(&opacityMinStr).
				Validate(validateFloat),

			huh.NewInput().
				Title("Opacity Max").
				Value(&opacityMaxStr).
				Validate(validateFloat),

			huh.NewInput().
				Title("Seed").
				Description("0 draws a fresh seed from system entropy").
				Value(&seedStr).
				Validate(validateInt64),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Palette").
				Options(paletteOptions...).
				Value(&paletteName),

			huh.NewInput().
				Title("Palette File").
				Description("TOML palette path, only used with 'from TOML file...'").
				Value(&cfg.Palette.File),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dither").
				Options(
					huh.NewOption("None", ""),
					huh.NewOption("Threshold", "threshold"),
					huh.NewOption("Random", "random"),
					huh.NewOption("Floyd-Steinberg", "floyd-steinberg"),
					huh.NewOption("Stucki", "stucki"),
				).
				Value(&cfg.Post.Dither),

			huh.NewSelect[string]().
				Title("Black & White").
				Options(
					huh.NewOption("None", ""),
					huh.NewOption("sRGB average", "srgb-average"),
					huh.NewOption("Linear average", "linear-average"),
					huh.NewOption("HSL desaturate", "hsl"),
					huh.NewOption("Lab", "lab"),
					huh.NewOption("Luv", "luv"),
				).
				Value(&cfg.Post.BW),

			huh.NewConfirm().
				Title("Stamp seed on the image?").
				Value(&cfg.Post.StampSeed),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Images").
				Description("More than 1 renders a batch into the output directory").
				Value(&imagesStr).
				Validate(validatePositiveInt),

			huh.NewInput().
				Title("Output File").
				Value(&cfg.Output.Path),

			huh.NewInput().
				Title("Output Directory (batch)").
				Value(&cfg.Output.Dir),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Canvas.Width, _ = strconv.Atoi(widthStr)
	cfg.Canvas.Height, _ = strconv.Atoi(heightStr)
	cfg.Marks.Seed, _ = strconv.ParseInt(seedStr, 10, 64)
	cfg.Marks.ScaleMin = parseFloat(scaleMinStr)
	cfg.Marks.ScaleMax = parseFloat(scaleMaxStr)
	cfg.Marks.OpacityMin = parseFloat(opacityMinStr)
	cfg.Marks.OpacityMax = parseFloat(opacityMaxStr)
	cfg.Output.Images, _ = strconv.Atoi(imagesStr)
	cfg.Palette.Name = paletteName
	if cfg.Palette.Name != "" {
		cfg.Palette.File = ""
	}

	return nil
}

func summary(cfg *Config) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Summary"))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value)))
	}

	row("Canvas", fmt.Sprintf("%dx%d on %s", cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Background))
	row("Marks", fmt.Sprintf("%s of %s (%s placement)", cfg.Marks.Count, cfg.Marks.Shapes, cfg.Marks.Placement))
	if cfg.Palette.File != "" {
		row("Palette", cfg.Palette.File)
	} else {
		row("Palette", cfg.Palette.Name)
	}
	if cfg.Marks.Seed != 0 {
		row("Seed", strconv.FormatInt(cfg.Marks.Seed, 10))
	} else {
		row("Seed", "auto (from entropy)")
	}
	if cfg.Post.Dither != "" {
		row("Dither", cfg.Post.Dither)
	}
	if cfg.Post.BW != "" {
		row("B&W", cfg.Post.BW)
	}
	if cfg.Output.Images > 1 {
		row("Output", fmt.Sprintf("%d images into %s", cfg.Output.Images, cfg.Output.Dir))
	} else {
		row("Output", cfg.Output.Path)
	}

	return b.String()
}

// runGeneration renders either a single image or a batch with a live
// progress view, and returns the resolved seed.
func runGeneration(cfg *Config, opts art.BatchOptions) (int64, error) {
	if opts.Images <= 1 {
		opts.Quiet = true
		res, err := art.Generate(opts.Options)
		if err != nil {
			return 0, err
		}
		if err := writePNG(res, cfg.Output.Path); err != nil {
			return 0, err
		}
		fmt.Println(doneStyle.Render("✓ Generation complete!"))
		fmt.Printf("  Seed: %d\n", res.Seed)
		fmt.Printf("  Output: %s\n", cfg.Output.Path)
		return res.Seed, nil
	}

	return runBatchWithProgress(opts)
}

func runBatchWithProgress(opts art.BatchOptions) (int64, error) {
	model := newProgressModel(opts.Images)
	p := tea.NewProgram(model)

	opts.Quiet = true
	opts.Progress = func(current, total int, path string) {
		p.Send(progressMsg{current: current, total: total, path: path})
	}

	var (
		res *art.BatchResult
		err error
	)
	go func() {
		res, err = art.GenerateBatch(opts)
		if err != nil {
			p.Send(errorMsg{err: err})
			return
		}
		p.Send(completionMsg{total: len(res.Files)})
	}()

	if _, uiErr := p.Run(); uiErr != nil {
		return 0, uiErr
	}
	if err != nil {
		return 0, err
	}

	fmt.Println(doneStyle.Render("✓ Generation complete!"))
	fmt.Printf("  Seed: %d\n", res.Seed)
	fmt.Printf("  Images: %d in %s\n", len(res.Files), opts.OutputDir)
	return res.Seed, nil
}

func writePNG(res *art.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return res.Canvas.EncodePNG(f)
}

func offerSave(cfg *Config) error {
	var save bool
	path := "markforge.yaml"

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Save this configuration for reuse?").
			Value(&save),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if !save {
		return nil
	}

	pathForm := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Config Path").
			Value(&path),
	))
	if err := pathForm.Run(); err != nil {
		return err
	}

	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("Configuration saved to %s\n", path)
	return nil
}

// progress model, adapted to a simple in-terminal bar

type progressMsg struct {
	current int
	total   int
	path    string
}

type completionMsg struct{ total int }

type errorMsg struct{ err error }

type progressModel struct {
	current   int
	total     int
	path      string
	startTime time.Time
	finished  bool
}

func newProgressModel(total int) progressModel {
	return progressModel{total: total, startTime: time.Now()}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.current = msg.current
		m.path = msg.path
		return m, nil
	case completionMsg, errorMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}

	const barWidth = 30
	filled := 0
	if m.total > 0 {
		filled = m.current * barWidth / m.total
	}
	bar := valueStyle.Render(strings.Repeat("█", filled)) +
		labelStyle.Render(strings.Repeat("░", barWidth-filled))

	elapsed := time.Since(m.startTime).Round(time.Second)
	return fmt.Sprintf("\n  Rendering %d/%d  %s  %s\n  %s\n",
		m.current, m.total, bar, elapsed, labelStyle.Render(m.path))
}

// validators

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validateInt64(s string) error {
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return fmt.Errorf("must be an integer")
	}
	return nil
}

func validateFloat(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func validateHexColor(s string) error {
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("must be a hex color like #1a2b3c")
	}
	return nil
}

func validateCountRange(s string) error {
	_, err := util.ParseCountRange(s)
	return err
}

func validateShapes(s string) error {
	_, err := art.ParseShapeWeights(s)
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
