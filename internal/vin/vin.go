// Package vin normalizes and validates raw VIN input. Checksum and format
// correctness beyond length is delegated to the decode provider.
package vin

import (
	"strings"

	"github.com/ukydev/vehicle-safety/internal/models"
)

// Length is the fixed length of a complete VIN.
const Length = 17

// Clean uppercases the input and strips every character outside [A-Z0-9].
// It never truncates, so Validate can reject input that carries too many
// significant characters as well as too few.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(Length)
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize is Clean truncated to 17 characters. It is idempotent.
func Normalize(s string) string {
	cleaned := Clean(s)
	if len(cleaned) > Length {
		return cleaned[:Length]
	}
	return cleaned
}

// Validate reports whether a cleaned VIN is complete enough to decode.
// Anything other than exactly 17 characters fails validation.
func Validate(s string) error {
	if len(s) != Length {
		return &models.ValidationError{Msg: "incomplete VIN"}
	}
	return nil
}
