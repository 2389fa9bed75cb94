// Package render turns codes into drawable QR symbols.
//
// # Overview
//
// This package sits between the page packer and the output sinks. It
// provides:
//
//   - QR symbol encoding ([Encode]) into a module bitmap with quiet zone
//   - A per-run definition table ([Defs]) so every unique code is encoded
//     once no matter how many copies are placed
//   - Generic format conversion (SVG to PDF) via rsvg-convert
//
// # Definition Reuse
//
// Repeated labels share geometry. Sinks look symbols up by code string:
//
//	defs := render.NewDefs()
//	sym, err := defs.Symbol("7KD2M") // encoded on first use
//	sym, err = defs.Symbol("7KD2M")  // same *Symbol, no re-encoding
//
// The [sink] subpackage draws pages from these symbols as SVG or PDF.
//
// # Format Conversion
//
// [ToPDF] converts an SVG page with the external rsvg-convert tool (from
// librsvg). It backs the optional "rsvg" PDF engine.
//
//	pdf, err := render.ToPDF(svg)
package render
