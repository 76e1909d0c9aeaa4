// Package attendance holds the pure attendance rules: day keys, status resolution,
// rate aggregation and period windows. Nothing in here touches storage.
package attendance

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the wire format of a normalized day.
const DayLayout = "2006-01-02"

// ErrInvalidDay is returned when a day cannot be parsed.
var ErrInvalidDay = errors.New("invalid day")

// NormalizeDay returns 00:00:00 UTC of the UTC calendar day containing t.
func NormalizeDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts YYYY-MM-DD or an RFC3339 timestamp and returns the normalized day.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDay)
	}
	if t, err := time.Parse(DayLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, raw)
	}
	return NormalizeDay(t), nil
}

// FormatDay renders a day key as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return NormalizeDay(t).Format(DayLayout)
}
