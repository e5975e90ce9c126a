package validation

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")
)

const maxCityNameLength = 100

// SanitizeString removes potentially dangerous characters and trims whitespace
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// SanitizeCityName normalizes a user-supplied city name. City names are
// free-form (accents, spaces, hyphens are all legitimate), so this only
// strips control characters and caps the length.
func SanitizeCityName(name string) string {
	name = SanitizeString(name)
	if utf8.RuneCountInString(name) > maxCityNameLength {
		runes := []rune(name)
		name = string(runes[:maxCityNameLength])
	}
	return name
}

// ValidateCityName checks that a sanitized city name is usable as a weather
// lookup key.
func ValidateCityName(name string) error {
	name = SanitizeCityName(name)
	if name == "" {
		return errors.New("city name cannot be empty")
	}
	return nil
}
