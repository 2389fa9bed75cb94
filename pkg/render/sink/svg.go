package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/qrlabels/pkg/fonts"
	"github.com/matzehuels/qrlabels/pkg/layout"
	"github.com/matzehuels/qrlabels/pkg/pack"
	"github.com/matzehuels/qrlabels/pkg/render"
)

// Shared definition ids.
const (
	PlateID    = "code_text_bg"
	HLineID    = "h_line"
	VLineID    = "v_line"
	CutLinesID = "cut_lines"
)

// cutDash is the stroke pattern for cut lines.
const cutDash = "1,5"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title     string
	runID     string
	embedFont bool
}

func WithTitle(t string) SVGOption  { return func(r *svgRenderer) { r.title = t } }
func WithRunID(id string) SVGOption { return func(r *svgRenderer) { r.runID = id } }

// WithEmbeddedFont inlines the label font as a base64 @font-face so the
// page renders the same everywhere.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// QRID returns the definition id of a code's symbol.
func QRID(code string) string { return code + "_qr" }

// TextID returns the definition id of a code's text.
func TextID(code string) string { return code + "_text" }

// RenderSVG renders one page. Sizes are in pixels at the plan's DPI; the
// document declares its physical size in inches.
func RenderSVG(page pack.Page, plan layout.Plan, defs *render.Defs, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	full := plan.Page.Pixels()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%gin" height="%gin" viewBox="0 0 %g %g" font-family="%s">`+"\n",
		plan.Page.Size.Width, plan.Page.Size.Height, full.Width, full.Height, html.EscapeString(fonts.FallbackFontFamily))

	r.renderMeta(&buf, page)

	buf.WriteString("<defs>\n")
	if r.embedFont {
		renderFontFace(&buf)
	}
	used := page.Codes()
	if err := renderDefs(&buf, plan, defs, used); err != nil {
		return nil, err
	}
	buf.WriteString("</defs>\n")

	for _, p := range page.Placements() {
		x, y := plan.CellOrigin(p.Row, p.Col)
		fmt.Fprintf(&buf, `<use xlink:href="#%s" x="%g" y="%g"/>`+"\n", p.Code, x, y)
	}
	if plan.CutLines {
		fmt.Fprintf(&buf, `<use xlink:href="#%s" x="0" y="0"/>`+"\n", CutLinesID)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (r *svgRenderer) renderMeta(buf *bytes.Buffer, page pack.Page) {
	if r.title != "" {
		fmt.Fprintf(buf, "<title>%s</title>\n", html.EscapeString(r.title))
	}
	desc := fmt.Sprintf("page %d", page.Index)
	if r.runID != "" {
		desc = fmt.Sprintf("run %s, %s", r.runID, desc)
	}
	fmt.Fprintf(buf, "<desc>%s</desc>\n", html.EscapeString(desc))
}

func renderFontFace(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "<style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style>\n",
		fonts.FontFamily, fonts.GoMonoBase64())
}

// renderDefs writes the plate, the cut line primitives and one group per
// code. Each group stacks symbol, plate and text in that order.
func renderDefs(buf *bytes.Buffer, plan layout.Plan, defs *render.Defs, codes []string) error {
	syms := make([]*render.Symbol, 0, len(codes))
	for _, code := range codes {
		sym, err := defs.Symbol(code)
		if err != nil {
			return err
		}
		syms = append(syms, sym)
	}
	if len(syms) == 0 {
		return nil
	}

	plate := plan.PlateSize(syms[0].Modules)
	fmt.Fprintf(buf, `<rect id="%s" x="0" y="0" width="%g" height="%g" fill="white" stroke="black"/>`+"\n",
		PlateID, plate.Width, plate.Height)

	if plan.CutLines {
		renderCutLineDefs(buf, plan)
	}

	c := plan.Center()
	px, py := plate.Center(c, c)
	for _, sym := range syms {
		code := sym.Code
		renderSymbolPath(buf, sym, plan.ModuleSize(sym.Modules))
		fmt.Fprintf(buf, `<text id="%s" x="%g" y="%g" font-size="%d" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			TextID(code), c, c, plan.FontSize(), html.EscapeString(code))
		fmt.Fprintf(buf, `<g id="%s"><use xlink:href="#%s" x="0" y="0"/><use xlink:href="#%s" x="%g" y="%g"/><use xlink:href="#%s" x="0" y="0"/></g>`+"\n",
			code, QRID(code), PlateID, px, py, TextID(code))
	}
	return nil
}

// renderSymbolPath writes the dark modules as one path in module units,
// scaled to pixels.
func renderSymbolPath(buf *bytes.Buffer, sym *render.Symbol, module float64) {
	fmt.Fprintf(buf, `<path id="%s" transform="scale(%g)" shape-rendering="crispEdges" fill="black" d="`, QRID(sym.Code), module)
	for i, run := range sym.Runs() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "M%d %dh%dv1h-%dz", run.X, run.Y, run.Len, run.Len)
	}
	buf.WriteString(`"/>` + "\n")
}

// renderCutLineDefs writes one horizontal and one vertical dashed line
// and a group placing them along every grid boundary.
func renderCutLineDefs(buf *bytes.Buffer, plan layout.Plan) {
	printable := plan.Page.Printable()
	fmt.Fprintf(buf, `<line id="%s" x1="0" y1="0" x2="%g" y2="0" stroke="black" stroke-dasharray="%s" stroke-width="1"/>`+"\n",
		HLineID, printable.Width, cutDash)
	fmt.Fprintf(buf, `<line id="%s" x1="0" y1="0" x2="0" y2="%g" stroke="black" stroke-dasharray="%s" stroke-width="1"/>`+"\n",
		VLineID, printable.Height, cutDash)

	fmt.Fprintf(buf, `<g id="%s">`+"\n", CutLinesID)
	for _, l := range plan.Guides() {
		id := HLineID
		if l.X1 == l.X2 {
			id = VLineID
		}
		fmt.Fprintf(buf, `<use xlink:href="#%s" x="%g" y="%g"/>`+"\n", id, l.X1, l.Y1)
	}
	buf.WriteString("</g>\n")
}
