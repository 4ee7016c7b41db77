package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds node names. Long URLs with query strings fit comfortably.
const maxNameLength = 4096

// ValidateName validates a node display name.
//
// The rules are intentionally loose since names are free text:
//   - No empty or whitespace-only names
//   - No control characters (they break the line-oriented shell and the tree print)
//   - Maximum length of 4096 bytes
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	return nil
}

// ValidateDescription rejects descriptions containing line breaks or other
// control characters. Empty descriptions are valid.
func ValidateDescription(desc string) error {
	for _, r := range desc {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "description contains invalid control characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a web scheme (http or https). Callers treat a
// failure as a warning: bookmarks may legitimately use other schemes.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
