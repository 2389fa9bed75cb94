package sink

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"github.com/matzehuels/qrlabels/pkg/errors"
	"github.com/matzehuels/qrlabels/pkg/fonts"
	"github.com/matzehuels/qrlabels/pkg/layout"
	"github.com/matzehuels/qrlabels/pkg/pack"
	"github.com/matzehuels/qrlabels/pkg/render"
)

// pointsPerInch is the PDF user space resolution.
const pointsPerInch = 72.0

// Meta is the document information attached to the PDF.
type Meta struct {
	Title   string
	Codes   []string // stored newline-joined in the Subject field
	Creator string
	Date    time.Time
}

// info converts m to the gopdf document info dictionary.
func (m Meta) info() gopdf.PdfInfo {
	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}
	return gopdf.PdfInfo{
		Title:        m.Title,
		Subject:      strings.Join(m.Codes, "\n"),
		Creator:      m.Creator,
		Producer:     "gopdf",
		CreationDate: date,
	}
}

// pdfCanvas wraps a gopdf document and converts plan pixels to points.
type pdfCanvas struct {
	pdf   *gopdf.GoPdf
	plan  layout.Plan
	ratio float64 // points per pixel
}

func newPDFCanvas(plan layout.Plan, meta Meta) *pdfCanvas {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		Unit: gopdf.UnitPT,
		PageSize: gopdf.Rect{
			W: plan.Page.Size.Width * pointsPerInch,
			H: plan.Page.Size.Height * pointsPerInch,
		},
	})
	pdf.SetInfo(meta.info())
	return &pdfCanvas{pdf: pdf, plan: plan, ratio: pointsPerInch / float64(plan.Page.DPI)}
}

func (c *pdfCanvas) pt(px float64) float64 { return px * c.ratio }

// RenderPDF draws every page into one PDF document.
func RenderPDF(pages []pack.Page, plan layout.Plan, defs *render.Defs, meta Meta) ([]byte, error) {
	c := newPDFCanvas(plan, meta)
	if err := c.pdf.AddTTFFontData(fonts.FontFamily, fonts.GoMonoTTF()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load label font")
	}
	size := c.pt(float64(plan.FontSize()))

	for _, page := range pages {
		c.pdf.AddPage()
		if err := c.pdf.SetFont(fonts.FontFamily, "", size); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "set label font")
		}
		for _, p := range page.Placements() {
			sym, err := defs.Symbol(p.Code)
			if err != nil {
				return nil, err
			}
			x, y := plan.CellOrigin(p.Row, p.Col)
			if err := c.drawLabel(sym, x, y); err != nil {
				return nil, err
			}
		}
		c.drawGuides()
	}

	data, err := c.pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "assemble pdf")
	}
	return data, nil
}

// drawLabel draws symbol, plate and text with the label's top-left corner
// at (x, y) pixels.
func (c *pdfCanvas) drawLabel(sym *render.Symbol, x, y float64) error {
	pdf := c.pdf
	m := c.plan.ModuleSize(sym.Modules)

	pdf.SetFillColor(0, 0, 0)
	for _, run := range sym.Runs() {
		pdf.RectFromUpperLeftWithStyle(
			c.pt(x+float64(run.X)*m), c.pt(y+float64(run.Y)*m),
			c.pt(float64(run.Len)*m), c.pt(m), "F")
	}

	plate := c.plan.PlateSize(sym.Modules)
	center := c.plan.Center()
	px, py := plate.Center(center, center)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetStrokeColor(0, 0, 0)
	pdf.SetLineWidth(c.pt(1))
	pdf.RectFromUpperLeftWithStyle(c.pt(x+px), c.pt(y+py), c.pt(plate.Width), c.pt(plate.Height), "FD")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(c.pt(x+px), c.pt(y+py))
	rect := &gopdf.Rect{W: c.pt(plate.Width), H: c.pt(plate.Height)}
	if err := pdf.CellWithOption(rect, sym.Code, gopdf.CellOption{Align: gopdf.Center | gopdf.Middle}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "draw text for %s", sym.Code)
	}
	return nil
}

// drawGuides draws the dotted cut lines, if any.
func (c *pdfCanvas) drawGuides() {
	lines := c.plan.Guides()
	if len(lines) == 0 {
		return
	}
	c.pdf.SetStrokeColor(0, 0, 0)
	c.pdf.SetLineWidth(c.pt(1))
	c.pdf.SetLineType("dotted")
	for _, l := range lines {
		c.pdf.Line(c.pt(l.X1), c.pt(l.Y1), c.pt(l.X2), c.pt(l.Y2))
	}
	c.pdf.SetLineType("solid")
}

// AssemblePDF imports single-page PDFs (one per label page) into one
// document carrying meta.
func AssemblePDF(pages [][]byte, plan layout.Plan, meta Meta) ([]byte, error) {
	c := newPDFCanvas(plan, meta)
	w := plan.Page.Size.Width * pointsPerInch
	h := plan.Page.Size.Height * pointsPerInch

	for i, data := range pages {
		if len(data) == 0 {
			return nil, errors.New(errors.ErrCodeConverter, "page %d converted to an empty document", i)
		}
		var rs io.ReadSeeker = bytes.NewReader(data)
		tpl := c.pdf.ImportPageStream(&rs, 1, "/MediaBox")
		c.pdf.AddPage()
		c.pdf.UseImportedTemplate(tpl, 0, 0, w, h)
	}

	data, err := c.pdf.GetBytesPdfReturnErr()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "assemble pdf")
	}
	return data, nil
}
