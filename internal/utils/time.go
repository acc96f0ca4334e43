package utils

import (
	"strings"
	"time"
)

const (
	LayoutDate = "2006-01-02"
	// LayoutISO is the millisecond UTC form used in every JSON response.
	LayoutISO = "2006-01-02T15:04:05.000Z"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(LayoutDate, strings.TrimSpace(s), time.UTC)
}

// FormatISO renders t in UTC with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(LayoutISO)
}

// FormatDate formats time to YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(LayoutDate)
}
