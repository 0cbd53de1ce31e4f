package normalize

import (
	"strings"
	"time"
)

// Common date formats found in clinical exports.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Timestamp formats, tried before the date-only formats so encounter
// start/stop columns keep their time component.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04",
}

// ParseDate attempts to parse a date string in multiple common formats.
// The result is normalized to midnight UTC. Returns nil if the input is
// empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			u := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &u
		}
	}
	// Some exports put full timestamps in date columns; keep the date part.
	if t := ParseTimestamp(s); t != nil {
		u := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &u
	}
	return nil
}

// ParseTimestamp attempts to parse a datetime string in multiple common
// formats, normalized to UTC. Date-only inputs parse to midnight UTC.
// Returns nil if the input is empty or unparseable.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			u := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &u
		}
	}
	return nil
}
