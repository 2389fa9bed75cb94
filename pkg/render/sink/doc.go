// Package sink draws packed pages as SVG or PDF.
//
// Both sinks consume the same inputs: a sealed [pack.Page], the run's
// [layout.Plan] and the shared [render.Defs] table. Each label is drawn in
// three layers (symbol, white text plate, code text) so the text stays
// legible over the symbol.
//
// # SVG
//
// [RenderSVG] emits one page. Every code used on the page is defined once
// under <defs> as a group and placed with <use>:
//
//	svg, err := sink.RenderSVG(page, plan, defs, sink.WithTitle("Pantry QR Labels"))
//
// # PDF
//
// [RenderPDF] draws all pages natively with gopdf and attaches document
// metadata. [AssemblePDF] instead imports pages that were already
// converted to PDF (see render.ToPDF) into one document.
package sink
