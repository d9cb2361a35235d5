package errors

import (
	"math"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxCanvasSide bounds canvas width and height. The occupancy grid grows
// with the canvas area, so unbounded sizes are rejected up front.
const MaxCanvasSide = 16384

// ValidateCanvas checks that a canvas has positive, bounded dimensions.
func ValidateCanvas(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidConfig, "canvas must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasSide || height > MaxCanvasSide {
		return New(ErrCodeInvalidConfig, "canvas too large (max %d per side), got %dx%d", MaxCanvasSide, width, height)
	}
	return nil
}

// ValidateSizeRange checks the font size range.
func ValidateSizeRange(minSize, maxSize float64) error {
	if !(minSize > 0) || math.IsInf(minSize, 0) || !(maxSize > 0) || math.IsInf(maxSize, 0) {
		return New(ErrCodeInvalidConfig, "font sizes must be positive and finite, got %v..%v", minSize, maxSize)
	}
	if minSize > maxSize {
		return New(ErrCodeInvalidConfig, "min size %v exceeds max size %v", minSize, maxSize)
	}
	return nil
}

// ValidateRotationRange checks that a rotation bound is a finite, non-negative angle.
func ValidateRotationRange(radians float64) error {
	if radians < 0 || math.IsNaN(radians) || math.IsInf(radians, 0) {
		return New(ErrCodeInvalidConfig, "rotation range must be a non-negative angle, got %v", radians)
	}
	return nil
}

// ValidateLayoutID checks that id is a UUID as issued by the layout store.
func ValidateLayoutID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid layout id %q", id)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is asked to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
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
	return nil
}
