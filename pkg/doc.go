// Package pkg holds the libraries behind qrlabels.
//
// # Overview
//
// qrlabels turns a request like "20 codes, 4 labels each" into a printable
// PDF of QR code labels. The pkg directory is organized by pipeline stage:
//
//  1. [codes] - unique short codes from a confusion-free alphabet
//  2. [layout] - page geometry and the label grid
//  3. [pack] - row-major placement of labels into pages
//  4. [render] - QR symbols, then SVG and PDF sinks in [render/sink]
//  5. [export] - file naming and writing
//  6. [pipeline] - options and the runner tying the stages together
//
// # Architecture
//
//	count, repeat, scale
//	         ↓
//	    [layout] plan (columns, rows, offsets)
//	         ↓
//	    [codes] generate
//	         ↓
//	    [pack] seal pages ──→ [render/sink] SVG per page
//	         ↓
//	    [render/sink] PDF
//	         ↓
//	    [export] <name>-qr-codes.pdf, _codes.txt, svgs/
//
// # Quick Start
//
//	opts := pipeline.DefaultOptions()
//	opts.Count, opts.Repeat = 20, 4
//	result, err := pipeline.NewRunner(logger).Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Files)
//
// Supporting packages: [errors] (coded errors), [fonts] (embedded label
// font), [observability] (pipeline hooks) and [buildinfo].
package pkg
