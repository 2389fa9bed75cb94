// Package codes generates short random identifiers for QR labels.
//
// Codes are fixed-length strings over an uppercase alphanumeric alphabet
// with 'Q' removed (it reads too much like '0' on small print). Labels are
// used as access tokens, so candidates are drawn from crypto/rand.
//
// # Usage
//
//	list, err := codes.Generate(50)
//	if err != nil {
//	    return err
//	}
//	for _, c := range list {
//	    fmt.Println(c) // e.g. "7KD2M"
//	}
package codes

import (
	"crypto/rand"
	"io"
	"math"
	"math/big"
	"strings"

	"github.com/matzehuels/qrlabels/pkg/errors"
)

const (
	// Alphabet is the set of characters codes are drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPRSTUVWXYZ0123456789"

	// Excluded is the character removed from the alphabet.
	Excluded = 'Q'

	// Length is the number of characters in a code.
	Length = 5
)

// Generator draws unique codes from an alphabet.
type Generator struct {
	alphabet string
	length   int
	rand     io.Reader
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the entropy source. Defaults to crypto/rand.Reader.
func WithRand(r io.Reader) Option { return func(g *Generator) { g.rand = r } }

// WithAlphabet overrides the alphabet.
func WithAlphabet(a string) Option { return func(g *Generator) { g.alphabet = a } }

// WithLength overrides the code length.
func WithLength(n int) Option { return func(g *Generator) { g.length = n } }

// New creates a Generator with the default alphabet and length.
func New(opts ...Option) *Generator {
	g := &Generator{alphabet: Alphabet, length: Length, rand: rand.Reader}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns n distinct codes using the default Generator.
func Generate(n int) ([]string, error) {
	return New().Generate(n)
}

// SpaceSize returns the number of distinct codes the generator can produce,
// saturating at math.MaxInt.
func (g *Generator) SpaceSize() int {
	size := 1
	for i := 0; i < g.length; i++ {
		if size > math.MaxInt/len(g.alphabet) {
			return math.MaxInt
		}
		size *= len(g.alphabet)
	}
	return size
}

// Generate returns n distinct codes in the order they were first drawn.
//
// Duplicates are discarded and sampling continues until n codes are
// collected. Requests larger than the code space fail immediately with
// an EXHAUSTED error instead of looping forever.
func (g *Generator) Generate(n int) ([]string, error) {
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "code count %d is not >= 1", n)
	}
	if len(g.alphabet) < 2 || g.length < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "alphabet of %d characters with length %d cannot produce codes", len(g.alphabet), g.length)
	}
	if space := g.SpaceSize(); n > space {
		return nil, errors.New(errors.ErrCodeExhausted, "%d unique codes requested but only %d exist", n, space)
	}

	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		code, err := g.next()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out, nil
}

// next draws a single candidate code.
func (g *Generator) next() (string, error) {
	size := big.NewInt(int64(len(g.alphabet)))
	var sb strings.Builder
	sb.Grow(g.length)
	for i := 0; i < g.length; i++ {
		idx, err := rand.Int(g.rand, size)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "read random source")
		}
		sb.WriteByte(g.alphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// Valid reports whether s is a well-formed code for the default alphabet.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
