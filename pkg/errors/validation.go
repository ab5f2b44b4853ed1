package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// RecommendedMinSize is the smallest canvas edge that reliably produces a
// subdivided picture. Smaller canvases are accepted but may end up a single leaf.
const RecommendedMinSize = 300

// ValidateDimensions checks a requested canvas size.
// Width and height must be positive; maxWidth and maxHeight, when positive,
// cap them.
func ValidateDimensions(width, height, maxWidth, maxHeight int) error {
	if width <= 0 {
		return New(ErrCodeInvalidDimensions, "width must be positive, got %d", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidDimensions, "height must be positive, got %d", height)
	}
	if maxWidth > 0 && width > maxWidth {
		return New(ErrCodeInvalidDimensions, "width %d exceeds maximum %d", width, maxWidth)
	}
	if maxHeight > 0 && height > maxHeight {
		return New(ErrCodeInvalidDimensions, "height %d exceeds maximum %d", height, maxHeight)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}
	return nil
}
