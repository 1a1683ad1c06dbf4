package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Anchor selects the time of day assumed for date-only input strings.
type Anchor int

const (
	StartOfDay Anchor = iota
	EndOfDay
)

const dateLayout = "2006-01-02"

// Layouts accepted for inputs that carry a time component.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses a provider date string into a UTC timestamp. A pure
// calendar date is anchored to the first or last instant of that day,
// depending on anchor; a timestamp-bearing string keeps its own time
// component and the anchor is ignored.
func ParseDate(s string, anchor Anchor) (time.Time, error) {
	trimmed := strings.TrimSpace(s)

	if t, err := time.ParseInLocation(dateLayout, trimmed, time.UTC); err == nil {
		if anchor == EndOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format %q", s)
}

// DateOf drops the time component, returning midnight UTC of the same
// calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
