// Package pack places repeated codes into fixed-size pages, row by row.
//
// Placement runs once per label: advance to the next row when the current
// one is full, seal the page when the rows run out, then place. Page and
// row boundaries can therefore fall anywhere inside a code's run of
// copies. Grouping forces each code onto a fresh row; fill pads a group's
// copies up to a whole number of rows.
//
// # Usage
//
//	p := pack.New(plan.Columns, plan.Rows, pack.Options{Group: true})
//	err := p.Pack(codes, repeat, func(page pack.Page) error {
//	    return render(page)
//	})
package pack

import (
	"github.com/matzehuels/qrlabels/pkg/errors"
)

// Options controls how codes are arranged.
type Options struct {
	// Group starts every code on a new row so no row mixes codes.
	Group bool

	// Fill rounds the repeat count up to a multiple of the column count.
	// It has no effect unless Group is set.
	Fill bool
}

// Placement is one code instance bound to a grid cell.
type Placement struct {
	Page int
	Row  int
	Col  int
	Code string
}

// Page is a sealed grid of codes, filled row-major.
type Page struct {
	Index int
	Rows  [][]string
}

// Len returns the number of labels on the page.
func (p Page) Len() int {
	n := 0
	for _, row := range p.Rows {
		n += len(row)
	}
	return n
}

// Placements returns the labels on the page in row-major order.
func (p Page) Placements() []Placement {
	out := make([]Placement, 0, p.Len())
	for r, row := range p.Rows {
		for c, code := range row {
			out = append(out, Placement{Page: p.Index, Row: r, Col: c, Code: code})
		}
	}
	return out
}

// Codes returns the distinct codes on the page in first-appearance order.
func (p Page) Codes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range p.Rows {
		for _, code := range row {
			if !seen[code] {
				seen[code] = true
				out = append(out, code)
			}
		}
	}
	return out
}

// SealFunc receives each page once it is full, and the final partial page.
type SealFunc func(Page) error

// EffectiveRepeat returns how many copies of each code are placed.
// With grouping and fill enabled the repeat is rounded up to a whole
// number of rows: ceil(repeat/columns) × columns.
func EffectiveRepeat(repeat, columns int, opts Options) int {
	if !opts.Group || !opts.Fill || columns < 1 {
		return repeat
	}
	return ((repeat-1)/columns + 1) * columns
}

// PageCount returns how many pages packing count codes would seal,
// without placing them. Grouped codes each take whole rows and rows run on
// across page breaks, so both modes reduce to a ceiling division.
func PageCount(columns, rows, count, repeat int, opts Options) int {
	if columns < 1 || rows < 1 || count < 1 || repeat < 1 {
		return 0
	}
	n := EffectiveRepeat(repeat, columns, opts)
	if opts.Group {
		used := count * ((n-1)/columns + 1)
		return (used-1)/rows + 1
	}
	return (count*n-1)/(columns*rows) + 1
}

// cursor is the packer's position on the current page.
type cursor struct {
	page Page
	row  int
	col  int
}

// Packer fills pages of a fixed grid.
type Packer struct {
	columns int
	rows    int
	opts    Options
	cur     cursor
	sealed  int
}

// New creates a Packer for a columns × rows grid.
func New(columns, rows int, opts Options) *Packer {
	return &Packer{columns: columns, rows: rows, opts: opts}
}

// Pack places EffectiveRepeat copies of every code and calls seal for
// every page, including the final partial one. Pages with no labels are
// never sealed. An error from seal stops packing and is returned as-is.
func (p *Packer) Pack(codes []string, repeat int, seal SealFunc) error {
	if p.columns < 1 || p.rows < 1 {
		return errors.New(errors.ErrCodeCapacity, "grid %dx%d cannot hold any labels", p.columns, p.rows)
	}
	if repeat < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "repeat %d is not >= 1", repeat)
	}

	n := EffectiveRepeat(repeat, p.columns, p.opts)
	p.cur = cursor{page: Page{Index: p.sealed}}
	for _, code := range codes {
		if p.opts.Group && len(p.cur.page.Rows) > 0 {
			p.cur.row++
			p.cur.col = 0
		}
		for i := 0; i < n; i++ {
			if err := p.place(code, seal); err != nil {
				return err
			}
		}
	}
	return p.flush(seal)
}

// place puts one copy of code at the cursor, sealing the page first if
// the cursor has run off the last row.
func (p *Packer) place(code string, seal SealFunc) error {
	c := &p.cur
	if c.col == p.columns {
		c.row++
		c.col = 0
	}
	if c.row == p.rows {
		if err := p.flush(seal); err != nil {
			return err
		}
	}
	if c.row == len(c.page.Rows) {
		c.page.Rows = append(c.page.Rows, nil)
	}
	c.page.Rows[c.row] = append(c.page.Rows[c.row], code)
	c.col++
	return nil
}

// flush seals the current page if it holds any labels and starts a new one.
func (p *Packer) flush(seal SealFunc) error {
	if p.cur.page.Len() > 0 {
		if err := seal(p.cur.page); err != nil {
			return err
		}
		p.sealed++
	}
	p.cur = cursor{page: Page{Index: p.sealed}}
	return nil
}

// Sealed returns the number of pages sealed so far.
func (p *Packer) Sealed() int {
	return p.sealed
}

// PackAll packs codes and returns every sealed page.
func PackAll(columns, rows int, codes []string, repeat int, opts Options) ([]Page, error) {
	var pages []Page
	err := New(columns, rows, opts).Pack(codes, repeat, func(pg Page) error {
		pages = append(pages, pg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}
