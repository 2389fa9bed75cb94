package pipeline

import (
	"testing"

	"github.com/matzehuels/qrlabels/pkg/errors"
	"github.com/matzehuels/qrlabels/pkg/layout"
)

func TestDefaultOptionsValid(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
	if opts.Logger == nil {
		t.Error("SetDefaults should install a logger")
	}
}

func TestSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()
	if opts.OutputDir != DefaultOutputDir || opts.Engine != DefaultEngine || opts.Page != layout.Letter {
		t.Errorf("SetDefaults = %+v", opts)
	}
	if opts.Count != 0 || opts.Scale != 0 {
		t.Error("SetDefaults should not touch counts or scale")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"zero count", func(o *Options) { o.Count = 0 }, errors.ErrCodeInvalidInput},
		{"negative repeat", func(o *Options) { o.Repeat = -1 }, errors.ErrCodeInvalidInput},
		{"small scale", func(o *Options) { o.Scale = 0.9 }, errors.ErrCodeInvalidInput},
		{"name with slash", func(o *Options) { o.Name = "a/b" }, errors.ErrCodeInvalidPath},
		{"unknown engine", func(o *Options) { o.Engine = "cairo" }, errors.ErrCodeInvalidConfig},
		{"zero dpi", func(o *Options) { o.Page.DPI = 0 }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
			if !errors.IsConfiguration(err) {
				t.Errorf("%v should be a configuration error", err)
			}
		})
	}
}

func TestNeedsSVG(t *testing.T) {
	opts := DefaultOptions()
	if opts.NeedsSVG() {
		t.Error("native engine without saved SVGs should not render SVGs")
	}
	opts.SaveSVGs = true
	if !opts.NeedsSVG() {
		t.Error("SaveSVGs should require SVGs")
	}
	opts = DefaultOptions()
	opts.Engine = EngineRSVG
	if !opts.NeedsSVG() {
		t.Error("rsvg engine should require SVGs")
	}
}

func TestNaming(t *testing.T) {
	opts := DefaultOptions()
	if got := opts.BaseName(); got != "qr-codes-1.50in" {
		t.Errorf("BaseName() = %q", got)
	}
	opts.Name = "garage bins"
	if got := opts.BaseName(); got != "garage bins-qr-codes" {
		t.Errorf("BaseName() = %q", got)
	}
	if got := opts.Title(); got != "Garage Bins QR Labels" {
		t.Errorf("Title() = %q", got)
	}
}
