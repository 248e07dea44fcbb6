package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength bounds node ids read from untrusted input.
const MaxIDLength = 512

// ValidateNodeID validates a node id read from an input document.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters (ids are printed one per line)
//   - Maximum length of MaxIDLength bytes
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "node id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidID, "node id too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "node id contains invalid control characters: %q", id)
		}
	}

	return nil
}

// ValidatePath validates one entry of a path list.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - No backslashes (Windows-style paths)
//
// Absolute and relative paths are both accepted; relative ones are anchored
// at the root by the loader.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateRedisURL validates a Redis connection URL.
// It ensures the URL uses the redis or rediss scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "redis URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "redis URL must use redis or rediss scheme")
	}

	return nil
}
