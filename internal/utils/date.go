package utils

import (
	"time"

	"github.com/karashiro/task-assignment-api/internal/constants"
)

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constants.DateLayout, value)
}

// DayBounds returns the inclusive start and end instants of the calendar day
// containing t, in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
	return start, end
}
