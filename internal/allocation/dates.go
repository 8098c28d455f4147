package allocation

import (
	"math"
	"time"
)

// StartOfDay truncates t to midnight UTC of its calendar date
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays moves a date by whole calendar days
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// DaysBetween counts calendar days from start to end; negative when end is earlier
func DaysBetween(start, end time.Time) int {
	return int(math.Round(StartOfDay(end).Sub(StartOfDay(start)).Hours() / 24))
}
