package pipeline

import (
	"regexp"
	"strconv"

	"github.com/matzehuels/qrlabels/pkg/errors"
)

// specPattern matches "<count>[x<repeat>][@<scale>]".
var specPattern = regexp.MustCompile(`^\s*(\d+)(?:x(\d+))?(?:@(\d+(?:\.?\d+)?))?\s*$`)

// ParseSpec applies a compact spec such as "20x4@2" (20 codes, 4 copies
// each, 2in symbols) to opts. Parts left out keep their current values.
// On error opts is unchanged.
func ParseSpec(s string, opts *Options) error {
	m := specPattern.FindStringSubmatch(s)
	if m == nil {
		return errors.New(errors.ErrCodeInvalidSpec, "invalid spec %q (expected COUNT[xREPEAT][@SCALE])", s)
	}

	count, err := strconv.Atoi(m[1])
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSpec, err, "invalid count in spec %q", s)
	}
	repeat := opts.Repeat
	if m[2] != "" {
		if repeat, err = strconv.Atoi(m[2]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSpec, err, "invalid repeat in spec %q", s)
		}
	}
	scale := opts.Scale
	if m[3] != "" {
		if scale, err = strconv.ParseFloat(m[3], 64); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSpec, err, "invalid scale in spec %q", s)
		}
	}

	opts.Count, opts.Repeat, opts.Scale = count, repeat, scale
	return nil
}
