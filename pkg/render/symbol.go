package render

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/matzehuels/qrlabels/pkg/errors"
)

// Level is the error-correction level symbols are encoded at. The text
// plate hides part of the symbol, so the highest level is used.
const Level = qrcode.Highest

// Run is a horizontal stretch of dark modules.
type Run struct {
	X, Y int // first module
	Len  int // modules
}

// Symbol is an encoded QR code including its quiet zone.
type Symbol struct {
	Code    string
	Modules int // side length in modules
	bitmap  [][]bool
	runs    []Run
}

// Encode builds the symbol for code.
func Encode(code string) (*Symbol, error) {
	if code == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot encode an empty code")
	}
	q, err := qrcode.New(code, Level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %q", code)
	}
	bm := q.Bitmap()
	return &Symbol{Code: code, Modules: len(bm), bitmap: bm, runs: scanRuns(bm)}, nil
}

// Dark reports whether the module at (x, y) is dark.
func (s *Symbol) Dark(x, y int) bool {
	if y < 0 || y >= len(s.bitmap) || x < 0 || x >= len(s.bitmap[y]) {
		return false
	}
	return s.bitmap[y][x]
}

// Runs returns the dark modules merged into horizontal runs, top to bottom.
func (s *Symbol) Runs() []Run {
	return s.runs
}

func scanRuns(bm [][]bool) []Run {
	var runs []Run
	for y, row := range bm {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			runs = append(runs, Run{X: start, Y: y, Len: x - start})
		}
	}
	return runs
}

// ModuleCount returns the symbol side, in modules, for codes of the given
// length. All codes of one length share a symbol version.
func ModuleCount(length int) (int, error) {
	s, err := Encode(strings.Repeat("_", length))
	if err != nil {
		return 0, err
	}
	return s.Modules, nil
}
