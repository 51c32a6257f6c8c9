package billing

import (
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// HoursBetween converts a start/end pair of "HH:MM" clock times on the same
// calendar day into elapsed hours. An end time earlier than the start time
// is treated as crossing midnight, never as a negative duration. Absent or
// malformed input yields 0.
func HoursBetween(start, end string) float64 {
	s, ok := clockToMinutes(start)
	if !ok {
		return 0
	}
	e, ok := clockToMinutes(end)
	if !ok {
		return 0
	}
	if e < s {
		e += minutesPerDay
	}
	return float64(e-s) / 60
}

// clockToMinutes parses "HH:MM" into minutes since midnight.
func clockToMinutes(clock string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// DayOfJob returns the weekday name for a "2006-01-02" job date, or ""
// when the date does not parse.
func DayOfJob(jobDate string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(jobDate))
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
