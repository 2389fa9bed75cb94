package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qrlabels/pkg/errors"
	"github.com/matzehuels/qrlabels/pkg/layout"
	"github.com/matzehuels/qrlabels/pkg/pipeline"
)

// fileConfig is the --config file format. Unset keys leave the defaults
// alone.
//
//	count = 40
//	repeat = 3
//	grouped = true
//	name = "pantry"
//
//	[page]
//	preset = "a4"
//	margin = 0.4
type fileConfig struct {
	Count     *int     `toml:"count"`
	Repeat    *int     `toml:"repeat"`
	Scale     *float64 `toml:"scale"`
	Grouped   *bool    `toml:"grouped"`
	Fill      *bool    `toml:"fill"`
	CutLines  *bool    `toml:"cut_lines"`
	Output    *string  `toml:"output"`
	Name      *string  `toml:"name"`
	SaveSVGs  *bool    `toml:"save_svgs"`
	SaveCodes *bool    `toml:"save_codes"`
	Engine    *string  `toml:"engine"`

	Page pageConfig `toml:"page"`
}

type pageConfig struct {
	Preset string   `toml:"preset"`
	Width  *float64 `toml:"width"`
	Height *float64 `toml:"height"`
	Margin *float64 `toml:"margin"`
	DPI    *int     `toml:"dpi"`
}

// loadConfig reads a config file, rejecting keys it does not know.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	var cfg fileConfig
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// apply copies every set value onto opts.
func (c *fileConfig) apply(opts *pipeline.Options) error {
	set(&opts.Count, c.Count)
	set(&opts.Repeat, c.Repeat)
	set(&opts.Scale, c.Scale)
	set(&opts.Group, c.Grouped)
	set(&opts.Fill, c.Fill)
	set(&opts.CutLines, c.CutLines)
	set(&opts.OutputDir, c.Output)
	set(&opts.Name, c.Name)
	set(&opts.SaveSVGs, c.SaveSVGs)
	set(&opts.SaveCodes, c.SaveCodes)
	set(&opts.Engine, c.Engine)

	if c.Page.Preset != "" {
		page, err := layout.Preset(c.Page.Preset)
		if err != nil {
			return err
		}
		opts.Page = page
	}
	set(&opts.Page.Size.Width, c.Page.Width)
	set(&opts.Page.Size.Height, c.Page.Height)
	set(&opts.Page.Margin, c.Page.Margin)
	set(&opts.Page.DPI, c.Page.DPI)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
