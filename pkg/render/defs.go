package render

// Defs is the table of shared symbol definitions for one run, keyed by
// code. It is owned by a single run and not safe for concurrent use.
type Defs struct {
	symbols map[string]*Symbol
}

// NewDefs creates an empty definition table.
func NewDefs() *Defs {
	return &Defs{symbols: make(map[string]*Symbol)}
}

// Symbol returns the symbol for code, encoding it on first request.
func (d *Defs) Symbol(code string) (*Symbol, error) {
	if s, ok := d.symbols[code]; ok {
		return s, nil
	}
	s, err := Encode(code)
	if err != nil {
		return nil, err
	}
	d.symbols[code] = s
	return s, nil
}

// Encoded returns how many distinct symbols were encoded.
func (d *Defs) Encoded() int {
	return len(d.symbols)
}
