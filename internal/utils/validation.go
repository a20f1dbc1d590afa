package utils

import (
	"errors"
	"regexp"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Transit record ids here are numeric, but allow the usual id charset
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// ARS numbers are short digit strings, optionally hyphenated (e.g. 05-199)
	validARSPattern = regexp.MustCompile(`^[0-9][0-9-]*$`)

	// Detect potentially dangerous characters - focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateARS validates a stop's ARS number
func ValidateARS(ars string) error {
	if ars == "" {
		return errors.New("ars cannot be empty")
	}

	if len(ars) > 20 {
		return errors.New("ars too long (max 20 characters)")
	}

	if !validARSPattern.MatchString(ars) {
		return errors.New("ars must contain only digits and hyphens")
	}

	return nil
}

// ValidateQuery validates search query strings. Queries may be Korean stop
// or line names, so only length and injection patterns are checked.
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// ValidateLatitude validates latitude values
func ValidateLatitude(lat float64) error {
	if lat < -90.0 || lat > 90.0 {
		return errors.New("latitude must be between -90 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateLocationParams validates a latitude/longitude pair
func ValidateLocationParams(lat, lon float64) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateLatitude(lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}

	if err := ValidateLongitude(lon); err != nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
	}

	return fieldErrors
}

// ValidateAndSanitizeQuery validates and sanitizes a search query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}
