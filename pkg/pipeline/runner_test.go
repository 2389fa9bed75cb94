package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrlabels/pkg/errors"
	"github.com/matzehuels/qrlabels/pkg/layout"
	"github.com/matzehuels/qrlabels/pkg/observability"
	"github.com/matzehuels/qrlabels/pkg/pack"
)

// smallPage holds a 4x6 grid of one-inch symbols.
var smallPage = layout.Page{Size: layout.Dimensions{Width: 5, Height: 7}, Margin: 0.5, DPI: 300}

// tinyPage holds a 2x2 grid of one-inch symbols.
var tinyPage = layout.Page{Size: layout.Dimensions{Width: 3, Height: 3}, Margin: 0.5, DPI: 300}

func testOptions(t *testing.T, page layout.Page) Options {
	t.Helper()
	opts := DefaultOptions()
	opts.Page = page
	opts.Scale = 1.0
	opts.OutputDir = t.TempDir()
	return opts
}

func TestExecuteSinglePage(t *testing.T) {
	opts := testOptions(t, smallPage)
	opts.Count = 3
	opts.SaveCodes = true

	res, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Plan.Columns != 4 || res.Plan.Rows != 6 {
		t.Errorf("grid = %dx%d, want 4x6", res.Plan.Columns, res.Plan.Rows)
	}
	if len(res.Codes) != 3 {
		t.Fatalf("got %d codes, want 3", len(res.Codes))
	}
	if len(res.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(res.Pages))
	}

	want := []pack.Placement{
		{Page: 0, Row: 0, Col: 0, Code: res.Codes[0]},
		{Page: 0, Row: 0, Col: 1, Code: res.Codes[1]},
		{Page: 0, Row: 0, Col: 2, Code: res.Codes[2]},
	}
	got := res.Pages[0].Placements()
	if len(got) != len(want) {
		t.Fatalf("placements = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if !bytes.HasPrefix(res.PDF, []byte("%PDF-")) {
		t.Error("document is not a PDF")
	}
	if n := pdfPageCount(res.PDF); n != 1 {
		t.Errorf("document has %d pages, want 1", n)
	}
	if got, want := pdfSubject(t, res.PDF), strings.Join(res.Codes, "\n"); got != want {
		t.Errorf("document subject = %q, want %q", got, want)
	}
	if res.RunID == "" {
		t.Error("RunID should be set")
	}

	base := filepath.Join(opts.OutputDir, "qr-codes-1.00in")
	codes, err := os.ReadFile(base + "_codes.txt")
	if err != nil {
		t.Fatalf("read codes list: %v", err)
	}
	if string(codes) != strings.Join(res.Codes, "\n") {
		t.Errorf("codes list = %q, want %q", codes, strings.Join(res.Codes, "\n"))
	}
	if _, err := os.Stat(base + ".pdf"); err != nil {
		t.Errorf("pdf not written: %v", err)
	}
	if len(res.Files) != 2 {
		t.Errorf("Files = %v, want codes list and pdf", res.Files)
	}
}

func TestExecuteOverflow(t *testing.T) {
	opts := testOptions(t, tinyPage)
	opts.Count = 1
	opts.Repeat = 5

	res, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(res.Pages))
	}
	if res.Pages[0].Len() != 4 || res.Pages[1].Len() != 1 {
		t.Errorf("page sizes = %d, %d, want 4, 1", res.Pages[0].Len(), res.Pages[1].Len())
	}
	if p := res.Pages[1].Placements()[0]; p.Row != 0 || p.Col != 0 {
		t.Errorf("overflow label at (%d, %d), want (0, 0)", p.Row, p.Col)
	}
	if res.Stats.Labels != 5 {
		t.Errorf("Labels = %d, want 5", res.Stats.Labels)
	}
	if res.Stats.Symbols != 1 {
		t.Errorf("Symbols = %d, want 1 for a single repeated code", res.Stats.Symbols)
	}
	if n := pdfPageCount(res.PDF); n != 2 {
		t.Errorf("document has %d pages, want 2", n)
	}
	if got := pdfSubject(t, res.PDF); got != res.Codes[0] {
		t.Errorf("document subject = %q, want %q", got, res.Codes[0])
	}
}

func TestExecuteDebugLog(t *testing.T) {
	opts := testOptions(t, tinyPage)
	opts.Count = 1
	opts.Repeat = 5

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	r := NewRunner(logger)
	r.DryRun = true
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"symbol geometry", "modules=29", "packed pages", "sealed=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

// pdfPageCount counts page objects in an uncompressed PDF object table.
func pdfPageCount(pdf []byte) int {
	return bytes.Count(pdf, []byte("/Type /Page\n"))
}

// pdfSubject decodes the UTF-16 hex string stored under /Subject.
func pdfSubject(t *testing.T, pdf []byte) string {
	t.Helper()
	const prefix = "/Subject <FEFF"
	i := bytes.Index(pdf, []byte(prefix))
	if i < 0 {
		t.Fatal("document has no /Subject entry")
	}
	rest := pdf[i+len(prefix):]
	end := bytes.IndexByte(rest, '>')
	if end < 0 || end%4 != 0 {
		t.Fatalf("malformed /Subject entry %q", rest)
	}
	var sb strings.Builder
	for j := 0; j < end; j += 4 {
		r, err := strconv.ParseUint(string(rest[j:j+4]), 16, 16)
		if err != nil {
			t.Fatalf("decode /Subject: %v", err)
		}
		sb.WriteRune(rune(r))
	}
	return sb.String()
}

func TestExecuteFillRoundsRepeat(t *testing.T) {
	opts := testOptions(t, smallPage)
	opts.Count = 2
	opts.Repeat = 3
	opts.Group = true
	opts.Fill = true

	res, err := NewRunner(nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Repeat != 4 {
		t.Errorf("effective repeat = %d, want 4", res.Stats.Repeat)
	}
	rows := res.Pages[0].Rows
	if len(rows) != 2 || len(rows[0]) != 4 || len(rows[1]) != 4 {
		t.Errorf("rows = %v, want two full rows", rows)
	}
}

func TestExecuteSavesSVGs(t *testing.T) {
	opts := testOptions(t, tinyPage)
	opts.Count = 1
	opts.Repeat = 5
	opts.Name = "bins"
	opts.SaveSVGs = true

	svgDir := filepath.Join(opts.OutputDir, "svgs")
	if err := os.MkdirAll(svgDir, 0755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(svgDir, "bins-qr-codes_p7.svg")
	if err := os.WriteFile(stale, []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewRunner(nil).Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	for _, name := range []string{"bins-qr-codes_p0.svg", "bins-qr-codes_p1.svg"} {
		data, err := os.ReadFile(filepath.Join(svgDir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if !bytes.Contains(data, []byte("Bins QR Labels")) {
			t.Errorf("%s missing title", name)
		}
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale page image should have been removed")
	}
	if _, err := os.Stat(filepath.Join(opts.OutputDir, "bins-qr-codes.pdf")); err != nil {
		t.Errorf("pdf not written: %v", err)
	}
}

func TestExecuteDryRun(t *testing.T) {
	opts := testOptions(t, smallPage)
	opts.SaveCodes = true

	r := NewRunner(nil)
	r.DryRun = true
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Files) != 0 {
		t.Errorf("dry run wrote %v", res.Files)
	}
	entries, _ := os.ReadDir(opts.OutputDir)
	if len(entries) != 0 {
		t.Errorf("dry run left %d entries in the output directory", len(entries))
	}
}

func TestExecuteConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"count", func(o *Options) { o.Count = 0 }, errors.ErrCodeInvalidInput},
		{"scale too large for page", func(o *Options) { o.Scale = 5 }, errors.ErrCodeCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t, tinyPage)
			tt.modify(&opts)
			_, err := NewRunner(nil).Execute(context.Background(), opts)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Execute() = %v, want %s", err, tt.code)
			}
			entries, _ := os.ReadDir(opts.OutputDir)
			if len(entries) != 0 {
				t.Errorf("configuration error left %d entries on disk", len(entries))
			}
		})
	}
}

func TestExecuteExhausted(t *testing.T) {
	opts := testOptions(t, tinyPage)
	opts.Count = 52521876
	_, err := NewRunner(nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeExhausted) {
		t.Fatalf("Execute() = %v, want EXHAUSTED", err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions(t, smallPage)
	_, err := NewRunner(nil).Execute(ctx, opts)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("Execute() = %v, want context.Canceled", err)
	}
}

func TestExecuteRSVGConverterError(t *testing.T) {
	opts := testOptions(t, smallPage)
	opts.Engine = EngineRSVG

	var converted int
	r := NewRunner(nil)
	r.ToPDF = func(svg []byte) ([]byte, error) {
		converted++
		if !bytes.HasPrefix(svg, []byte("<svg")) {
			t.Errorf("converter got %q", svg[:8])
		}
		return nil, stderrors.New("boom")
	}

	_, err := r.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeConverter) {
		t.Fatalf("Execute() = %v, want CONVERTER", err)
	}
	if converted != 1 {
		t.Errorf("converter called %d times, want 1", converted)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	pages  int
	labels int
	files  int
}

func (h *countingHooks) OnPageSealed(_ context.Context, _ int, labels int) {
	h.pages++
	h.labels += labels
}

func (h *countingHooks) OnExport(_ context.Context, files int, _ time.Duration, _ error) {
	h.files = files
}

func TestExecuteHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	opts := testOptions(t, tinyPage)
	opts.Count = 2
	opts.Repeat = 3
	if _, err := NewRunner(nil).Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if hooks.pages != 2 || hooks.labels != 6 {
		t.Errorf("hooks saw %d pages / %d labels, want 2 / 6", hooks.pages, hooks.labels)
	}
	if hooks.files != 1 {
		t.Errorf("hooks saw %d files, want 1", hooks.files)
	}
}
