package validation

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a submitted date matches none of the accepted layouts.
var ErrInvalidDate = errors.New("validation: invalid date")

// DateInputLayout is the layout produced by browsers for datetime-local inputs.
const DateInputLayout = "2006-01-02T15:04"

// DateSecondsLayout is DateInputLayout with seconds.
const DateSecondsLayout = "2006-01-02T15:04:05"

var dateLayouts = []string{
	DateInputLayout,
	DateSecondsLayout,
	"2006-01-02 15:04",
}

// ParseDate interprets a zone-less wall clock value as UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// FormatDate renders t in UTC so ParseDate returns the same instant. Seconds
// are only written when present.
func FormatDate(t time.Time) string {
	t = t.UTC()
	if t.Second() != 0 {
		return t.Format(DateSecondsLayout)
	}
	return t.Format(DateInputLayout)
}
