// Package export writes a run's artifacts to disk.
//
// A run produces up to three kinds of files, all named after one base
// name:
//
//	<dir>/<base>.pdf              combined document (always)
//	<dir>/<base>_codes.txt        generated codes, one per line
//	<dir>/svgs/<base>_p<i>.svg    intermediate page images
//
// The base name is "<name>-qr-codes" for a named run and
// "qr-codes-<scale>in" otherwise. Failures are wrapped as IO_ERROR and
// nothing already written is rolled back.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/qrlabels/pkg/errors"
)

// SVGDir is the subdirectory intermediate pages are written to.
const SVGDir = "svgs"

// BaseName returns the file name stem shared by a run's outputs.
func BaseName(name string, scale float64) string {
	if name = strings.TrimSpace(name); name != "" {
		return name + "-qr-codes"
	}
	return fmt.Sprintf("qr-codes-%.2fin", scale)
}

// Title returns the document title for a run name, e.g. "pantry shelf"
// becomes "Pantry Shelf QR Labels".
func Title(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "QR Labels"
	}
	return cases.Title(language.English).String(name) + " QR Labels"
}

// Writer places files for one run under Dir.
type Writer struct {
	Dir    string
	Base   string
	Logger *log.Logger
}

// NewWriter creates a Writer. A nil logger discards output.
func NewWriter(dir, base string, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.New(nopWriter{})
	}
	return &Writer{Dir: dir, Base: base, Logger: logger}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// PDFPath returns the path of the combined document.
func (w *Writer) PDFPath() string {
	return filepath.Join(w.Dir, w.Base+".pdf")
}

// CodesPath returns the path of the codes list.
func (w *Writer) CodesPath() string {
	return filepath.Join(w.Dir, w.Base+"_codes.txt")
}

// SVGPath returns the path of the intermediate image for page index.
func (w *Writer) SVGPath(index int) string {
	return filepath.Join(w.Dir, SVGDir, fmt.Sprintf("%s_p%d.svg", w.Base, index))
}

// EnsureDir creates the output directory if it does not exist.
func (w *Writer) EnsureDir() error {
	return mkdir(w.Dir)
}

// WriteCodes writes codes one per line in generation order.
func (w *Writer) WriteCodes(codes []string) (string, error) {
	path := w.CodesPath()
	if err := writeFile(path, []byte(strings.Join(codes, "\n"))); err != nil {
		return "", err
	}
	w.Logger.Debugf("Wrote %d codes to %s", len(codes), path)
	return path, nil
}

// CleanSVGs removes page images left by an earlier run with the same base
// name, so a shorter run does not leave stale pages behind. It returns the
// number of files removed.
func (w *Writer) CleanSVGs() (int, error) {
	dir := filepath.Join(w.Dir, SVGDir)
	if err := mkdir(dir); err != nil {
		return 0, err
	}
	w.Logger.Debugf("Cleaning old '%s_p*.svg' in %s", w.Base, dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeIO, err, "read %s", dir)
	}
	removed := 0
	prefix := w.Base + "_p"
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".svg") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return removed, errors.Wrap(errors.ErrCodeIO, err, "remove %s", name)
		}
		removed++
	}
	return removed, nil
}

// WriteSVG writes the image for page index.
func (w *Writer) WriteSVG(index int, data []byte) (string, error) {
	path := w.SVGPath(index)
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WritePDF writes the combined document.
func (w *Writer) WritePDF(data []byte) (string, error) {
	path := w.PDFPath()
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

func mkdir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := mkdir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
