// Package timeparse parses the report timestamps found in exported incident
// tables. Exports mix ISO layouts with a day-first "d/m/yy H:MM" form.
package timeparse

import (
	"strings"
	"time"
)

// layouts are tried in order. Day-first slash forms come after the
// year-first ones so "2025/05/26" never reads as a day.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006/1/2",
	"2/1/06 15:04:05",
	"2/1/06 15:04",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/06",
	"2/1/2006",
	"20060102150405",
}

// Parse returns the instant for s and whether any layout accepted it.
// Values without a zone are read as UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
