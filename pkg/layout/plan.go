package layout

import (
	"math"

	"github.com/matzehuels/qrlabels/pkg/errors"
)

const (
	// BaseFontSize is the label text size at scale 1.0, in pixels.
	BaseFontSize = 20

	// QuietZone is the number of blank modules around a QR symbol.
	QuietZone = 4

	// cutStroke is the width reserved for one cut line, in pixels.
	cutStroke = 1
)

// Plan is the grid computed for one run.
type Plan struct {
	Page     Page
	Scale    float64
	CutLines bool

	// Symbol is the side of one rendered symbol in pixels, without the
	// cut-line reservation.
	Symbol int

	Columns int
	Rows    int

	// Canvas is the area covered by the grid (and closing cut lines).
	Canvas Dimensions

	// XOffset and YOffset centre the canvas on the full page.
	XOffset int
	YOffset int
}

// NewPlan computes the grid for page at the given scale.
// It returns a CAPACITY error when not even one label fits.
func NewPlan(page Page, scale float64, cutLines bool) (Plan, error) {
	if err := page.Validate(); err != nil {
		return Plan{}, err
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Plan{}, errors.New(errors.ErrCodeInvalidInput, "scale %g is not a positive number", scale)
	}

	p := Plan{
		Page:     page,
		Scale:    scale,
		CutLines: cutLines,
		Symbol:   int(scale * float64(page.DPI)),
	}
	if p.Symbol < 1 {
		return Plan{}, errors.New(errors.ErrCodeCapacity, "scale %g renders symbols smaller than one pixel", scale)
	}

	printable := page.Printable()
	if cutLines {
		printable = printable.Resize(-cutStroke)
	}
	footprint := float64(p.Footprint())
	p.Columns = int(math.Floor(printable.Width / footprint))
	p.Rows = int(math.Floor(printable.Height / footprint))
	if p.Columns < 1 || p.Rows < 1 {
		return Plan{}, errors.New(errors.ErrCodeCapacity,
			"a %dpx label does not fit the %.0fx%.0fpx printable area (grid %dx%d)",
			p.Footprint(), printable.Width, printable.Height, p.Columns, p.Rows)
	}

	grid := Dimensions{float64(p.Columns), float64(p.Rows)}
	if cutLines {
		p.Canvas = grid.Scale(footprint).Resize(cutStroke)
	} else {
		p.Canvas = grid.Scale(footprint)
	}

	full := page.Pixels()
	if !p.Canvas.Fits(full) {
		return Plan{}, errors.New(errors.ErrCodeInternal, "canvas %.0fx%.0fpx overflows the page", p.Canvas.Width, p.Canvas.Height)
	}
	p.XOffset = int((full.Width - p.Canvas.Width) / 2)
	p.YOffset = int((full.Height - p.Canvas.Height) / 2)
	return p, nil
}

// Footprint returns the pitch between neighbouring cells in pixels.
func (p Plan) Footprint() int {
	if p.CutLines {
		return p.Symbol + cutStroke
	}
	return p.Symbol
}

// Capacity returns the number of labels one page holds.
func (p Plan) Capacity() int {
	return p.Columns * p.Rows
}

// CellOrigin returns the top-left pixel of the cell at (row, col) on the
// full page.
func (p Plan) CellOrigin(row, col int) (float64, float64) {
	f := p.Footprint()
	return float64(col*f + p.XOffset), float64(row*f + p.YOffset)
}

// Center returns the midpoint of a symbol relative to its own origin.
func (p Plan) Center() float64 {
	return float64(p.Symbol) / 2
}

// ModuleSize returns the side of one QR module in pixels for a symbol that
// is modules wide (quiet zone included).
func (p Plan) ModuleSize(modules int) float64 {
	return float64(p.Symbol) / float64(modules)
}

// PlateSize returns the text plate drawn over the middle of a symbol that
// is modules wide. The plate spans a third of the symbol content and three
// modules of height, shrunk by one pixel so its stroke stays inside.
func (p Plan) PlateSize(modules int) Dimensions {
	module := float64(p.Page.DPI) / float64(modules)
	content := module * float64(modules-2*QuietZone)
	base := Dimensions{content / 3, module * 3}
	return base.Scale(p.Scale).Resize(-1)
}

// FontSize returns the label text size in pixels.
func (p Plan) FontSize() int {
	return int(BaseFontSize * p.Scale)
}

// Line is a straight segment in page pixels.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Guides returns the vertical then horizontal cut lines for the grid,
// or nil when cut lines are disabled. Vertical lines span the printable
// height starting at the top margin; horizontal lines span the printable
// width starting at the left margin.
func (p Plan) Guides() []Line {
	if !p.CutLines {
		return nil
	}
	margin := p.Page.MarginPixels()
	printable := p.Page.Printable()
	f := float64(p.Footprint())

	lines := make([]Line, 0, p.Columns+p.Rows+2)
	for i := 0; i <= p.Columns; i++ {
		x := float64(i)*f + float64(p.XOffset)
		lines = append(lines, Line{X1: x, Y1: margin, X2: x, Y2: margin + printable.Height})
	}
	for j := 0; j <= p.Rows; j++ {
		y := float64(j)*f + float64(p.YOffset)
		lines = append(lines, Line{X1: margin, Y1: y, X2: margin + printable.Width, Y2: y})
	}
	return lines
}
