package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/qrlabels/pkg/buildinfo"
	"github.com/matzehuels/qrlabels/pkg/codes"
	"github.com/matzehuels/qrlabels/pkg/errors"
	"github.com/matzehuels/qrlabels/pkg/export"
	"github.com/matzehuels/qrlabels/pkg/layout"
	"github.com/matzehuels/qrlabels/pkg/observability"
	"github.com/matzehuels/qrlabels/pkg/pack"
	"github.com/matzehuels/qrlabels/pkg/render"
	"github.com/matzehuels/qrlabels/pkg/render/sink"
)

// Runner executes label runs. It keeps no state between runs.
type Runner struct {
	Logger *log.Logger

	// Rand overrides the entropy source for code generation.
	Rand io.Reader

	// ToPDF converts one page SVG for the rsvg engine. Defaults to
	// render.ToPDF.
	ToPDF func(svg []byte) ([]byte, error)

	// DryRun skips writing files.
	DryRun bool
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger, ToPDF: render.ToPDF}
}

// Execute runs plan → generate → pack → render → export.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	plan, err := layout.NewPlan(opts.Page, opts.Scale, opts.CutLines)
	if err != nil {
		return nil, err
	}
	hooks.OnPlan(ctx, plan.Columns, plan.Rows, plan.Scale)
	r.Logger.Info("planned page",
		"columns", plan.Columns,
		"rows", plan.Rows,
		"symbol", plan.Symbol)
	if modules, err := render.ModuleCount(codes.Length); err != nil {
		r.Logger.Debug("symbol geometry unavailable", "error", err)
	} else {
		r.Logger.Debug("symbol geometry", "modules", modules, "module_px", plan.ModuleSize(modules))
	}

	repeat := pack.EffectiveRepeat(opts.Repeat, plan.Columns, opts.PackOptions())
	if repeat != opts.Repeat {
		r.Logger.Debug("rounded repeat up to whole rows", "requested", opts.Repeat, "effective", repeat)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString(), Plan: plan}
	result.Stats.Repeat = repeat

	genStart := time.Now()
	result.Codes, err = r.generator().Generate(opts.Count)
	result.Stats.GenerateTime = time.Since(genStart)
	hooks.OnGenerate(ctx, opts.Count, result.Stats.GenerateTime, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("generated codes", "count", len(result.Codes), "duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	defs := render.NewDefs()
	svgs, err := r.packPages(ctx, opts, result, defs)
	if err != nil {
		return nil, err
	}
	if result.PDF, err = r.document(opts, result, defs, svgs); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Symbols = defs.Encoded()
	r.Logger.Info("rendered document",
		"pages", len(result.Pages),
		"labels", result.Stats.Labels,
		"symbols", result.Stats.Symbols,
		"duration", result.Stats.RenderTime)

	if r.DryRun {
		return result, nil
	}

	exportStart := time.Now()
	result.Files, err = r.export(opts, result, svgs)
	result.Stats.ExportTime = time.Since(exportStart)
	hooks.OnExport(ctx, len(result.Files), result.Stats.ExportTime, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Runner) generator() *codes.Generator {
	if r.Rand != nil {
		return codes.New(codes.WithRand(r.Rand))
	}
	return codes.New()
}

// packPages packs the codes, recording every sealed page on result and
// returning one SVG per page when the run needs them. The context is
// checked before each page is sealed.
func (r *Runner) packPages(ctx context.Context, opts Options, result *Result, defs *render.Defs) ([][]byte, error) {
	hooks := observability.Pipeline()
	svgOpts := []sink.SVGOption{
		sink.WithTitle(opts.Title()),
		sink.WithRunID(result.RunID),
		sink.WithEmbeddedFont(),
	}

	var svgs [][]byte
	packer := pack.New(result.Plan.Columns, result.Plan.Rows, opts.PackOptions())
	err := packer.Pack(result.Codes, opts.Repeat, func(page pack.Page) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.NeedsSVG() {
			svg, err := sink.RenderSVG(page, result.Plan, defs, svgOpts...)
			if err != nil {
				return err
			}
			svgs = append(svgs, svg)
		}
		result.Pages = append(result.Pages, page)
		result.Stats.Labels += page.Len()
		hooks.OnPageSealed(ctx, page.Index, page.Len())
		r.Logger.Debug("sealed page", "page", page.Index, "labels", page.Len())
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("packed pages", "sealed", packer.Sealed())
	return svgs, nil
}

// document builds the combined PDF with the configured engine.
func (r *Runner) document(opts Options, result *Result, defs *render.Defs, svgs [][]byte) ([]byte, error) {
	meta := sink.Meta{
		Title:   opts.Title(),
		Codes:   result.Codes,
		Creator: buildinfo.Creator(result.RunID),
		Date:    time.Now(),
	}

	switch opts.Engine {
	case EngineRSVG:
		convert := r.ToPDF
		if convert == nil {
			convert = render.ToPDF
		}
		pages := make([][]byte, len(svgs))
		for i, svg := range svgs {
			pdf, err := convert(svg)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeConverter, err, "convert page %d", i)
			}
			pages[i] = pdf
		}
		return sink.AssemblePDF(pages, result.Plan, meta)
	default:
		return sink.RenderPDF(result.Pages, result.Plan, defs, meta)
	}
}

// export writes the run's files: codes list, page SVGs, then the PDF.
func (r *Runner) export(opts Options, result *Result, svgs [][]byte) ([]string, error) {
	w := export.NewWriter(opts.OutputDir, opts.BaseName(), r.Logger)
	if err := w.EnsureDir(); err != nil {
		return nil, err
	}

	var files []string
	if opts.SaveCodes {
		path, err := w.WriteCodes(result.Codes)
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}

	if opts.SaveSVGs {
		removed, err := w.CleanSVGs()
		if err != nil {
			return files, err
		}
		if removed > 0 {
			r.Logger.Debug("removed stale page images", "count", removed)
		}
		for i, svg := range svgs {
			path, err := w.WriteSVG(i, svg)
			if err != nil {
				return files, err
			}
			files = append(files, path)
		}
	}

	path, err := w.WritePDF(result.PDF)
	if err != nil {
		return files, err
	}
	return append(files, path), nil
}
