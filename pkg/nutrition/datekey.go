package nutrition

import (
	"time"

	errorvalues "github.com/limbo/macrolog/internal/error_values"
)

const DateLayout = "2006-01-02"

// DateKey formats t as a YYYY-MM-DD key in t's own location. Callers that derive
// lookup keys and callers that store meals must both go through it.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a strict YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(key) != len(DateLayout) {
		return time.Time{}, errorvalues.ErrInvalidDate
	}
	t, err := time.ParseInLocation(DateLayout, key, loc)
	if err != nil {
		return time.Time{}, errorvalues.ErrInvalidDate
	}
	return t, nil
}

// ValidDateKey reports whether key is a well-formed YYYY-MM-DD key.
func ValidDateKey(key string) bool {
	_, err := ParseDateKey(key, time.UTC)
	return err == nil
}

// Today returns the key for the current day in loc.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return DateKey(time.Now().In(loc))
}

// MonthBounds returns the first and the last date keys of the month containing t.
func MonthBounds(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return DateKey(first), DateKey(last)
}
