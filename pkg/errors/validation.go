package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// pageIDRegex matches valid page identifiers.
var pageIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidatePageID validates a page identifier. Identifiers are non-empty and
// consist of ASCII letters, digits, '_' and '-'.
func ValidatePageID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "page id cannot be empty")
	}
	if !pageIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid page id %q: only letters, digits, '_' and '-' are allowed", id)
	}
	return nil
}

// ValidateReference validates an image or background reference (SRC:/BG:).
// It rejects empty values, control characters and embedded whitespace.
func ValidateReference(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidInput, "reference cannot be empty")
	}
	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "reference contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "reference cannot contain whitespace")
		}
	}
	return nil
}

// ValidatePath validates a relative output path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateSourceName validates a diagnostic source label.
// Labels are free-form but must be printable and at most 256 characters.
func ValidateSourceName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "source name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "source name contains invalid control characters")
		}
	}
	return nil
}
