// Package fonts provides the monospace font used for label text.
//
// Go Mono ships with golang.org/x/image, so the same glyphs are available
// to the PDF writer (as TTF) and to SVG pages (as a base64 @font-face)
// without depending on fonts installed on the host.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/gomono"
)

// GoMonoTTF returns the TTF font data.
func GoMonoTTF() []byte {
	return gomono.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// GoMonoBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func GoMonoBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gomono.TTF)
	})
	return ttfBase64
}

// FontFamily is the family name the font is registered under.
const FontFamily = "Go Mono"

// FallbackFontFamily lists monospace fallbacks for viewers that ignore
// embedded fonts.
const FallbackFontFamily = `'Go Mono', 'JetBrains Mono', monospace`
