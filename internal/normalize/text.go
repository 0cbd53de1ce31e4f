package normalize

import (
	"regexp"
	"strings"
)

var (
	multiSpace      = regexp.MustCompile(`\s+`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)
)

// ID trims surrounding whitespace from an identifier. Returns the empty
// string for all-whitespace input so callers can treat it as missing.
func ID(s string) string {
	return strings.TrimSpace(s)
}

// FreeText collapses internal whitespace and trims the input, preserving
// case. Returns nil if the result is empty, so empty and missing values
// land in the same null bucket.
func FreeText(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	t = multiSpace.ReplaceAllString(t, " ")
	return &t
}

// HeaderKey lowercases a column header and strips every non-alphanumeric
// character, so "BIRTHDATE", "Birth_Date", and "birth date" all resolve
// to the same key.
func HeaderKey(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}
