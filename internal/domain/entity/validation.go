package entity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

var (
	// letters (including extended Latin), whitespace and hyphens
	displayNamePattern = regexp.MustCompile(`^[A-Za-zÀ-ȕ\s\-]+$`)
	// letters, digits and hyphens, no whitespace
	tokenPattern = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)
	// letters, digits, whitespace and hyphens
	tagPattern   = regexp.MustCompile(`^[A-Za-z0-9\s\-]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@.]+$`)
)

// Field validators are stateless predicates shared by every entity rule set.
// Each returns nil on success or the violation to record. None of them panic.

// Required fails when value is empty.
func Required(field, label, value string) *ValidationError {
	if value == "" {
		return &ValidationError{Field: field, Message: label + " is required"}
	}
	return nil
}

// NotBlank fails when a non-empty value consists only of whitespace.
func NotBlank(field, label, value string) *ValidationError {
	if value != "" && strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Value: value, Message: label + " cannot be whitespace only"}
	}
	return nil
}

// DisplayName accepts letters, spaces and hyphens and rejects whitespace-only values.
func DisplayName(field, label, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Value: value, Message: label + " cannot be whitespace only"}
	}
	if !displayNamePattern.MatchString(value) {
		return &ValidationError{Field: field, Value: value, Message: label + " cannot contain special characters"}
	}
	return nil
}

// Token accepts letters, digits and hyphens only.
func Token(field, label, value string) *ValidationError {
	if !tokenPattern.MatchString(value) {
		return &ValidationError{Field: field, Value: value, Message: label + " cannot contain special characters and/or spaces"}
	}
	return nil
}

// Tag accepts letters, digits, spaces and hyphens.
func Tag(field, label, value string) *ValidationError {
	if strings.TrimSpace(value) == "" || !tagPattern.MatchString(value) {
		return &ValidationError{Field: field, Value: value, Message: label + " must be alphanumeric (spaces and hyphens allowed)"}
	}
	return nil
}

// LengthBounds checks the character count of value. A zero bound is not enforced.
func LengthBounds(field, label, value string, min, max int) *ValidationError {
	n := utf8.RuneCountInString(value)
	if min > 0 && n < min {
		return &ValidationError{Field: field, Value: value, Message: fmt.Sprintf("%s must be at least %d characters", label, min)}
	}
	if max > 0 && n > max {
		return &ValidationError{Field: field, Value: value, Message: fmt.Sprintf("%s must not exceed %d characters", label, max)}
	}
	return nil
}

// Email checks the structural shape of an email address.
func Email(field, label, value string) *ValidationError {
	if !emailPattern.MatchString(value) {
		return &ValidationError{Field: field, Value: value, Message: label + " must be a valid email address"}
	}
	return nil
}

// URL checks the structural shape of an http(s) URL.
func URL(field, label, value string) *ValidationError {
	if err := ValidateURL(value); err != nil {
		return &ValidationError{Field: field, Value: value, Message: label + " " + err.Message}
	}
	return nil
}

// NumericRange checks lo <= value <= hi.
func NumericRange(field, label string, value, lo, hi float64) *ValidationError {
	if value < lo || value > hi {
		return &ValidationError{Field: field, Value: value, Message: fmt.Sprintf("%s must be between %g and %g", label, lo, hi)}
	}
	return nil
}

// ValidateURL validates the format of a URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, and has a host.
// No network lookup is performed.
func ValidateURL(rawURL string) *ValidationError {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "is required"}
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "must be a valid URL"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "must have a valid host"}
	}

	return nil
}
