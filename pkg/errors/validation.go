package errors

import (
	"strings"
	"unicode"
)

// MaxVertexIDLength bounds vertex identifiers read from graph files.
const MaxVertexIDLength = 256

// ValidateVertexID validates a vertex identifier coming from user input.
//
// Identifiers must be non-empty, at most MaxVertexIDLength bytes, and free of
// control characters so they survive round trips through JSON, DOT and logs.
func ValidateVertexID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "vertex id cannot be empty")
	}
	if len(id) > MaxVertexIDLength {
		return New(ErrCodeInvalidGraph, "vertex id too long (max %d characters)", MaxVertexIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "vertex id %q contains control characters", id)
		}
	}
	return nil
}

// ValidateFamilySize checks the size parameter of a graph family.
// Sizes must be positive and no larger than limit.
func ValidateFamilySize(family string, n, limit int) error {
	if n < 1 {
		return New(ErrCodeInvalidFamily, "%s: size must be positive, got %d", family, n)
	}
	if limit > 0 && n > limit {
		return New(ErrCodeInvalidFamily, "%s: size %d exceeds limit %d", family, n, limit)
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
