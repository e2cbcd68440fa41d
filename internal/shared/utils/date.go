package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// ParseDate accepts YYYY-MM-DD, "YYYY-MM-DD HH:MM:SS" or RFC 3339 input and
// returns the UTC calendar date at midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return TruncateDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

// ParseDatePtr is ParseDate for optional input. Nil or blank yields nil.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TruncateDate drops the clock part after converting to UTC.
func TruncateDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatDatePtr returns nil for a nil date.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// DayWindow returns [start, end) covering the whole UTC day of t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := TruncateDate(t)
	return start, start.AddDate(0, 0, 1)
}
