// Package layout converts page geometry and a print scale into a label grid.
//
// All planning happens in device pixels at the page's DPI. A [Plan] is a
// pure function of its inputs: the same page, scale and cut-line setting
// always produce the same grid, canvas and offsets.
//
// # Grid arithmetic
//
// One label occupies a square of int(scale × DPI) pixels (one inch of
// symbol at scale 1.0). With cut lines enabled every cell grows by one
// pixel for the stroke, and the printable area loses one pixel per axis so
// the closing line still fits:
//
//	printable = page×DPI − 2×margin×DPI (−1 with cut lines)
//	footprint = int(scale×DPI) (+1 with cut lines)
//	columns   = ⌊printable.W / footprint⌋
//	rows      = ⌊printable.H / footprint⌋
//
// Partial cells are always dropped. A grid with no columns or no rows is
// reported as a CAPACITY error.
//
// # Usage
//
//	plan, err := layout.NewPlan(layout.Letter, 1.5, false)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(plan.Columns, plan.Rows) // 5 6
package layout
