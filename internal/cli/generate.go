package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrlabels/pkg/errors"
	"github.com/matzehuels/qrlabels/pkg/layout"
	"github.com/matzehuels/qrlabels/pkg/observability"
	"github.com/matzehuels/qrlabels/pkg/pipeline"
	"github.com/matzehuels/qrlabels/pkg/render"
)

// labelFlags holds the flags shared by the root and plan commands.
type labelFlags struct {
	count  int
	repeat int
	scale  float64

	grouped  bool
	fill     bool
	cutLines bool

	output    string
	name      string
	saveSVGs  bool
	saveCodes bool

	page   string
	margin float64
	dpi    int
	engine string

	config string
	dryRun bool
}

func newLabelFlags() *labelFlags {
	d := pipeline.DefaultOptions()
	return &labelFlags{
		count:  d.Count,
		repeat: d.Repeat,
		scale:  d.Scale,
		output: d.OutputDir,
		page:   "letter",
		margin: d.Page.Margin,
		dpi:    d.Page.DPI,
		engine: d.Engine,
	}
}

func (f *labelFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.count, "count", "c", f.count, "number of unique codes")
	fs.IntVarP(&f.repeat, "repeat", "r", f.repeat, "labels per code")
	fs.Float64VarP(&f.scale, "scale", "s", f.scale, "symbol size in inches (>= 1.0)")
	fs.BoolVar(&f.grouped, "grouped", false, "start each code on a new row")
	fs.BoolVar(&f.fill, "fill", false, "round labels per code up to full rows (with --grouped)")
	fs.BoolVar(&f.cutLines, "include-cut-lines", false, "draw dotted cut lines between labels")
	fs.StringVarP(&f.output, "output", "o", f.output, "output directory")
	fs.StringVarP(&f.name, "name", "n", "", "run name used in file names and the document title")
	fs.BoolVar(&f.saveSVGs, "save-svgs", false, "keep per-page SVGs in <output>/svgs")
	fs.BoolVar(&f.saveCodes, "save-codes", false, "write the generated codes to a text file")
	fs.StringVar(&f.page, "page", f.page, "page size: "+strings.Join(layout.PresetNames(), ", "))
	fs.Float64Var(&f.margin, "margin", f.margin, "page margin in inches")
	fs.IntVar(&f.dpi, "dpi", f.dpi, "layout resolution")
	fs.StringVar(&f.engine, "engine", f.engine, "document engine: native (default), rsvg")
	fs.StringVar(&f.config, "config", "", "TOML file with default options")

	_ = cmd.RegisterFlagCompletionFunc("page", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return layout.PresetNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.EngineNative, pipeline.EngineRSVG}, cobra.ShellCompDirectiveNoFileComp
	})
}

// options resolves the run options. Later sources win: defaults, the
// config file, flags set on the command line, then the spec argument.
func (f *labelFlags) options(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	if f.config != "" {
		cfg, err := loadConfig(f.config)
		if err != nil {
			return opts, err
		}
		if err := cfg.apply(&opts); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("count") {
		opts.Count = f.count
	}
	if changed("repeat") {
		opts.Repeat = f.repeat
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("grouped") {
		opts.Group = f.grouped
	}
	if changed("fill") {
		opts.Fill = f.fill
	}
	if changed("include-cut-lines") {
		opts.CutLines = f.cutLines
	}
	if changed("output") {
		opts.OutputDir = f.output
	}
	if changed("name") {
		opts.Name = f.name
	}
	if changed("save-svgs") {
		opts.SaveSVGs = f.saveSVGs
	}
	if changed("save-codes") {
		opts.SaveCodes = f.saveCodes
	}
	if changed("engine") {
		opts.Engine = f.engine
	}
	if changed("page") {
		page, err := layout.Preset(f.page)
		if err != nil {
			return opts, err
		}
		page.Margin, page.DPI = opts.Page.Margin, opts.Page.DPI
		opts.Page = page
	}
	if changed("margin") {
		opts.Page.Margin = f.margin
	}
	if changed("dpi") {
		opts.Page.DPI = f.dpi
	}

	if len(args) == 1 {
		if err := pipeline.ParseSpec(args[0], &opts); err != nil {
			return opts, err
		}
	}

	if opts.Fill && !opts.Group {
		loggerFromContext(cmd.Context()).Warn("--fill has no effect without --grouped")
	}
	return opts, nil
}

// runGenerate executes the pipeline and prints a summary.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, dryRun bool) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	if opts.Engine == pipeline.EngineRSVG && !render.Available() {
		return errors.New(errors.ErrCodeConverter, "the rsvg engine requires rsvg-convert on PATH")
	}

	runner := pipeline.NewRunner(logger)
	runner.DryRun = dryRun

	prog := newProgress(logger)
	spin := newSpinner(ctx, os.Stderr, "Generating labels...")
	observability.SetPipelineHooks(&spinnerHooks{spin: spin})
	defer observability.Reset()

	spin.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.StopWithError("Generation failed")
		return err
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Generated %d codes on %d pages", len(res.Codes), len(res.Pages)))

	printSuccess("%d labels for %d codes on %d %s",
		res.Stats.Labels, len(res.Codes), len(res.Pages), plural(len(res.Pages), "page", "pages"))
	for _, path := range res.Files {
		printFile(path)
	}
	if dryRun {
		printDetail("dry run: nothing written")
	}
	return nil
}

// spinnerHooks reports sealed pages on the spinner.
type spinnerHooks struct {
	observability.NoopPipelineHooks
	spin   *spinner
	labels int
}

func (h *spinnerHooks) OnPageSealed(_ context.Context, index, labels int) {
	h.labels += labels
	h.spin.SetMessage(fmt.Sprintf("Rendering page %d (%d labels)...", index+1, h.labels))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
