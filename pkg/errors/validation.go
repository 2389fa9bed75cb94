package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds run names; they end up in file names and titles.
const maxNameLength = 128

// ValidateName validates a run name used in output file names.
// Empty names are allowed (the caller falls back to a scale based name).
//
// Rejected:
//   - control characters and null bytes
//   - path separators and traversal sequences
//   - names longer than 128 characters
func ValidateName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPath, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputDir validates an output directory path.
// Absolute and relative paths are both fine; the directory is created
// later if it does not exist.
func ValidateOutputDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output directory cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output directory contains invalid characters")
		}
	}

	return nil
}
