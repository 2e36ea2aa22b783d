// Package dto defines the request and response shapes of the HTTP API and
// their mapping to domain types. Calendar dates cross the wire as plain
// YYYY-MM-DD strings; responses carry time.Time values at UTC midnight.
package dto

import (
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD wire date into a UTC-midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// ParseDatePtr parses an optional wire date. Nil and empty both map to nil.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders a time.Time back into the wire date form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDatePtr renders an optional date; nil maps to the empty string.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// ErrorResponse is the generic error payload returned by handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
