package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// ParseDate parses a strict YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(DateLayout) {
		return time.Time{}, httperr.ErrInvalidDate
	}
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, httperr.ErrInvalidDate
	}
	return d, nil
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns the canonical
// HH:MM:SS form used for every slot key.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)

	var layout string
	switch len(s) {
	case len("15:04"):
		layout = "15:04"
	case len(TimeLayout):
		layout = TimeLayout
	default:
		return "", httperr.ErrInvalidTime
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return "", httperr.ErrInvalidTime
	}
	return t.Format(TimeLayout), nil
}

// ScheduledAt combines a date and a canonical time in loc.
func ScheduledAt(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, httperr.ErrInvalidInput
	}
	return t, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
