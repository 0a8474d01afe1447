// Package timeutil provides helpers for day arithmetic and duration
// formatting.
package timeutil

import (
	"fmt"
	"time"
)

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// DayKey formats a time as its calendar day, suitable for grouping and
// sorting.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatSeconds renders a duration as HH:MM:SS, truncated to whole seconds.
// Hours are not wrapped at 24 and negative durations keep a leading sign.
func FormatSeconds(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	total := int64(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
}
