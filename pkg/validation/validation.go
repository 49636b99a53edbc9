// Package validation provides validation and sanitization for scenario
// values and operator input.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Size limits
const (
	MaxVehicleNameLen = 32
	MaxCommandLen     = 32
)

// Vehicle names end up in logs, CSV rows and the HUD, so they are kept to a
// plain character set.
var validVehicleNameChars = regexp.MustCompile(`^[a-zA-Z0-9 \-_.]+$`)

// ValidateVehicleName validates a vehicle name and returns it trimmed
func ValidateVehicleName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("vehicle name cannot be empty")
	}

	// Check length
	if len(name) > MaxVehicleNameLen {
		return "", fmt.Errorf("vehicle name too long: %d characters (max %d)", len(name), MaxVehicleNameLen)
	}

	// Check UTF-8 validity
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("vehicle name contains invalid UTF-8 characters")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("vehicle name cannot be only whitespace")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("vehicle name contains control characters")
		}
	}

	if !validVehicleNameChars.MatchString(trimmed) {
		return "", fmt.Errorf("vehicle name %q contains invalid characters (only letters, digits, spaces, hyphens, underscores and dots allowed)", trimmed)
	}

	return trimmed, nil
}

// ValidateUniqueNames reports the first name used more than once
func ValidateUniqueNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return fmt.Errorf("duplicate vehicle name %q", name)
		}
		seen[name] = true
	}
	return nil
}

// ValidateFinite rejects NaN and infinite values
func ValidateFinite(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number, got %v", field, value)
	}
	return nil
}

// SanitizeCommand cleans a line typed on the terminal. Control characters are
// dropped and surrounding whitespace trimmed, except that a line holding only
// spaces is returned as a single space, the pause key.
func SanitizeCommand(line string) (string, error) {
	if len(line) > MaxCommandLen {
		return "", fmt.Errorf("command too long: %d characters (max %d)", len(line), MaxCommandLen)
	}

	if !utf8.ValidString(line) {
		return "", fmt.Errorf("command contains invalid UTF-8 characters")
	}

	filtered := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, line)

	if filtered != "" && strings.TrimSpace(filtered) == "" {
		return " ", nil
	}
	return strings.TrimSpace(filtered), nil
}
