package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Provider indicator codes are dotted upper case words, e.g. SP.POP.TOTL
	validCodePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateCode validates that an indicator code is safe and within reasonable limits
func ValidateCode(code string) error {
	if code == "" {
		return errors.New("code cannot be empty")
	}

	if len(code) > 100 {
		return errors.New("code too long (max 100 characters)")
	}

	if !validCodePattern.MatchString(code) {
		return errors.New("code contains invalid characters")
	}

	return nil
}

// ValidateQuery validates free text query values such as an indicator name
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

// ValidateYear checks that year lies in first..last
func ValidateYear(year, first, last int) error {
	if year < first || year > last {
		return fmt.Errorf("year must be between %d and %d", first, last)
	}
	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateAndSanitizeQuery validates and sanitizes a query value
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}
