package layout

// Dimensions is a width/height pair in a single unit system.
type Dimensions struct {
	Width  float64
	Height float64
}

// Scale multiplies both components by f.
func (d Dimensions) Scale(f float64) Dimensions {
	return Dimensions{d.Width * f, d.Height * f}
}

// Resize adds delta to both components.
func (d Dimensions) Resize(delta float64) Dimensions {
	return Dimensions{d.Width + delta, d.Height + delta}
}

// Center returns the top-left corner of a box of size d centred on (x, y).
func (d Dimensions) Center(x, y float64) (float64, float64) {
	return x - d.Width/2, y - d.Height/2
}

// Fits reports whether d is no larger than o on both axes.
func (d Dimensions) Fits(o Dimensions) bool {
	return d.Width <= o.Width && d.Height <= o.Height
}
