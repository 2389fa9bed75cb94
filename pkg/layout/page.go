package layout

import (
	"sort"
	"strings"

	"github.com/matzehuels/qrlabels/pkg/errors"
)

const (
	// DefaultDPI is the resolution all pixel geometry is computed at.
	DefaultDPI = 300

	// DefaultMargin is the page margin in inches.
	DefaultMargin = 0.5
)

// Page describes the physical sheet labels are printed on.
type Page struct {
	Size   Dimensions // inches
	Margin float64    // inches
	DPI    int
}

// Letter is US Letter paper with the default margin and resolution.
var Letter = Page{Size: Dimensions{8.5, 11}, Margin: DefaultMargin, DPI: DefaultDPI}

// presets maps page names to their size in inches.
var presets = map[string]Dimensions{
	"letter": {8.5, 11},
	"legal":  {8.5, 14},
	"a4":     {8.27, 11.69},
	"a5":     {5.83, 8.27},
}

// PresetNames returns the known page size names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns the page with the named paper size, default margin and DPI.
func Preset(name string) (Page, error) {
	size, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Page{}, errors.New(errors.ErrCodeInvalidConfig, "unknown page size %q (must be one of: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return Page{Size: size, Margin: DefaultMargin, DPI: DefaultDPI}, nil
}

// Validate checks that the page can hold a printable area.
func (p Page) Validate() error {
	if p.DPI <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi %d is not > 0", p.DPI)
	}
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "page size %gx%gin is not positive", p.Size.Width, p.Size.Height)
	}
	if p.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin %gin is negative", p.Margin)
	}
	if 2*p.Margin >= p.Size.Width || 2*p.Margin >= p.Size.Height {
		return errors.New(errors.ErrCodeInvalidConfig, "margin %gin leaves no printable area on a %gx%gin page", p.Margin, p.Size.Width, p.Size.Height)
	}
	return nil
}

// Pixels returns the full page size in pixels.
func (p Page) Pixels() Dimensions {
	return p.Size.Scale(float64(p.DPI))
}

// MarginPixels returns the margin in pixels.
func (p Page) MarginPixels() float64 {
	return p.Margin * float64(p.DPI)
}

// Printable returns the page size minus margins, in pixels.
func (p Page) Printable() Dimensions {
	return p.Pixels().Resize(-2 * p.MarginPixels())
}
