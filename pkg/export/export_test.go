package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/qrlabels/pkg/errors"
)

func TestBaseName(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  string
	}{
		{"", 1.5, "qr-codes-1.50in"},
		{"", 2, "qr-codes-2.00in"},
		{"pantry", 1.5, "pantry-qr-codes"},
		{"  pantry  ", 1.5, "pantry-qr-codes"},
	}
	for _, tt := range tests {
		if got := BaseName(tt.name, tt.scale); got != tt.want {
			t.Errorf("BaseName(%q, %g) = %q, want %q", tt.name, tt.scale, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "QR Labels"},
		{"pantry", "Pantry QR Labels"},
		{"garage SHELF", "Garage Shelf QR Labels"},
	}
	for _, tt := range tests {
		if got := Title(tt.name); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriterPaths(t *testing.T) {
	w := NewWriter("out", "x-qr-codes", nil)
	if got := w.PDFPath(); got != filepath.Join("out", "x-qr-codes.pdf") {
		t.Errorf("PDFPath() = %q", got)
	}
	if got := w.CodesPath(); got != filepath.Join("out", "x-qr-codes_codes.txt") {
		t.Errorf("CodesPath() = %q", got)
	}
	if got := w.SVGPath(3); got != filepath.Join("out", "svgs", "x-qr-codes_p3.svg") {
		t.Errorf("SVGPath(3) = %q", got)
	}
}

func TestWriteCodes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir, "base", nil)
	if err := w.EnsureDir(); err != nil {
		t.Fatal(err)
	}

	path, err := w.WriteCodes([]string{"AAAAA", "BBBBB", "CCCCC"})
	if err != nil {
		t.Fatalf("WriteCodes: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "AAAAA\nBBBBB\nCCCCC" {
		t.Errorf("codes file = %q", data)
	}
}

func TestCleanSVGs(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "base", nil)
	svgDir := filepath.Join(dir, SVGDir)
	if err := os.MkdirAll(svgDir, 0755); err != nil {
		t.Fatal(err)
	}

	files := map[string]bool{
		"base_p0.svg":   true,
		"base_p12.svg":  true,
		"base_p0.pdf":   false,
		"other_p0.svg":  false,
		"base-x_p0.svg": false,
		"notes.txt":     false,
	}
	for name := range files {
		if err := os.WriteFile(filepath.Join(svgDir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := w.CleanSVGs()
	if err != nil {
		t.Fatalf("CleanSVGs: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed %d files, want 2", removed)
	}
	for name, gone := range files {
		_, err := os.Stat(filepath.Join(svgDir, name))
		if gone && !os.IsNotExist(err) {
			t.Errorf("%s should have been removed", name)
		}
		if !gone && err != nil {
			t.Errorf("%s should have been kept: %v", name, err)
		}
	}
}

func TestCleanSVGsCreatesDir(t *testing.T) {
	dir := t.TempDir()
	removed, err := NewWriter(dir, "base", nil).CleanSVGs()
	if err != nil || removed != 0 {
		t.Fatalf("CleanSVGs() = %d, %v", removed, err)
	}
	if fi, err := os.Stat(filepath.Join(dir, SVGDir)); err != nil || !fi.IsDir() {
		t.Errorf("svgs directory not created: %v", err)
	}
}

func TestWriteSVGAndPDF(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "base", nil)

	svg, err := w.WriteSVG(0, []byte("<svg/>"))
	if err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if svg != w.SVGPath(0) {
		t.Errorf("WriteSVG path = %q", svg)
	}
	pdf, err := w.WritePDF([]byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if data, _ := os.ReadFile(pdf); string(data) != "%PDF-1.4" {
		t.Errorf("pdf contents = %q", data)
	}
}

func TestWriteErrorsAreIO(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(filepath.Join(blocker, "out"), "base", nil)
	if err := w.EnsureDir(); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("EnsureDir() = %v, want IO_ERROR", err)
	}
	if _, err := w.WritePDF([]byte("x")); !errors.Is(err, errors.ErrCodeIO) {
		t.Errorf("WritePDF() = %v, want IO_ERROR", err)
	}
}
