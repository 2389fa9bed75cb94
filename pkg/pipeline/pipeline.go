// Package pipeline runs a complete label job: plan the grid, generate
// codes, pack them into pages, draw the document and write it to disk.
//
// The CLI builds an [Options] value from flags, an optional config file
// and the compact spec argument, then hands it to a [Runner]:
//
//	opts := pipeline.DefaultOptions()
//	if err := pipeline.ParseSpec("20x4@2", &opts); err != nil {
//	    return err
//	}
//	result, err := pipeline.NewRunner(logger).Execute(ctx, opts)
//
// Every configuration error is reported before any code is generated, and
// nothing is written until all pages have been sealed.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrlabels/pkg/errors"
	"github.com/matzehuels/qrlabels/pkg/export"
	"github.com/matzehuels/qrlabels/pkg/layout"
	"github.com/matzehuels/qrlabels/pkg/pack"
)

const (
	DefaultCount     = 1
	DefaultRepeat    = 1
	DefaultScale     = 1.5
	DefaultOutputDir = "."

	// MinScale is the smallest symbol side in inches that still scans
	// reliably once printed.
	MinScale = 1.0
)

// Document engines.
const (
	// EngineNative draws pages directly into the PDF.
	EngineNative = "native"

	// EngineRSVG renders page SVGs and converts them with rsvg-convert.
	EngineRSVG = "rsvg"
)

// DefaultEngine is the engine used when none is configured.
const DefaultEngine = EngineNative

// ValidEngines is the set of supported document engines.
var ValidEngines = map[string]bool{
	EngineNative: true,
	EngineRSVG:   true,
}

// Options configures one run.
type Options struct {
	Count  int     // number of distinct codes
	Repeat int     // copies of each code
	Scale  float64 // symbol side in inches

	Group    bool // start every code on a new row
	Fill     bool // pad each group to whole rows (requires Group)
	CutLines bool // draw dotted guides between labels

	OutputDir string
	Name      string // optional run name used in file names and the title
	SaveSVGs  bool   // keep per-page SVGs under <OutputDir>/svgs
	SaveCodes bool   // write the codes list next to the PDF

	Page   layout.Page
	Engine string

	Logger *log.Logger
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Count:     DefaultCount,
		Repeat:    DefaultRepeat,
		Scale:     DefaultScale,
		OutputDir: DefaultOutputDir,
		Page:      layout.Letter,
		Engine:    DefaultEngine,
	}
}

// SetDefaults fills unset non-numeric fields. Counts and scale are
// validated rather than defaulted, so a zero there is an error.
func (o *Options) SetDefaults() {
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Page == (layout.Page{}) {
		o.Page = layout.Letter
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every field that can be checked without planning.
func (o *Options) Validate() error {
	if o.Count < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "count %d is not >= 1", o.Count)
	}
	if o.Repeat < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "repeat %d is not >= 1", o.Repeat)
	}
	if o.Scale < MinScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g is not >= %g", o.Scale, MinScale)
	}
	if err := errors.ValidateName(o.Name); err != nil {
		return err
	}
	if err := errors.ValidateOutputDir(o.OutputDir); err != nil {
		return err
	}
	if !ValidEngines[o.Engine] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid engine: %q (must be one of: native, rsvg)", o.Engine)
	}
	return o.Page.Validate()
}

// ValidateAndSetDefaults applies defaults and then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// PackOptions returns the packer settings for this run.
func (o *Options) PackOptions() pack.Options {
	return pack.Options{Group: o.Group, Fill: o.Fill}
}

// NeedsSVG reports whether page SVGs must be rendered.
func (o *Options) NeedsSVG() bool {
	return o.SaveSVGs || o.Engine == EngineRSVG
}

// BaseName returns the file name stem shared by all outputs.
func (o *Options) BaseName() string {
	return export.BaseName(o.Name, o.Scale)
}

// Title returns the document title.
func (o *Options) Title() string {
	return export.Title(o.Name)
}

// Result contains the outputs of a run.
type Result struct {
	// RunID identifies the run in document metadata.
	RunID string

	// Codes are the generated codes in generation order.
	Codes []string

	Plan  layout.Plan
	Pages []pack.Page

	// PDF is the combined document.
	PDF []byte

	// Files lists every path written, in write order.
	Files []string

	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Labels       int
	Repeat       int // effective copies per code after fill rounding
	Symbols      int // QR symbols encoded, once per distinct code
	GenerateTime time.Duration
	RenderTime   time.Duration
	ExportTime   time.Duration
}
