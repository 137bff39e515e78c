package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateRange checks that v is a finite number within [min, max].
// The name is used in the error message.
func ValidateRange(name string, v, min, max float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v < min || v > max {
		return New(ErrCodeInvalidConfig, "%s must be within [%g, %g], got %g", name, min, max, v)
	}
	return nil
}

// ValidatePositive checks that v is finite and strictly greater than zero.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateNonNegative checks that v is finite and not below zero.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must not be negative, got %g", name, v)
	}
	return nil
}

// ValidateIndex checks that i addresses a slot in a collection of length n.
// Insert positions may equal n; pass inclusive=true for those.
func ValidateIndex(i, n int, inclusive bool) error {
	limit := n - 1
	if inclusive {
		limit = n
	}
	if i < 0 || i > limit {
		return New(ErrCodeOutOfRange, "index %d out of range [0,%d]", i, limit)
	}
	return nil
}

// ValidateKey validates an item identity key.
//
// The validation rules are intentionally conservative:
//   - No empty keys
//   - No control characters
//   - No surrounding whitespace
//   - Maximum length of 256 characters
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "item key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "item key too long (max 256 characters)")
	}
	if strings.TrimSpace(key) != key {
		return New(ErrCodeInvalidKey, "item key has surrounding whitespace: %q", key)
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "item key contains invalid control characters")
		}
	}
	return nil
}
