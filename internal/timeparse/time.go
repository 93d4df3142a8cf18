package timeparse

import (
	"fmt"
	"strings"
	"time"
)

// clockLayouts are time-of-day layouts that resolve against a reference day.
var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04PM",
	"3:04:05PM",
	"3:04 PM",
	"3:04:05 PM",
}

// ParseTime parses a wall-clock target relative to now.
// Supported formats:
//   - YYYY-MM-DD (midnight in now's location)
//   - YYYY-MM-DD HH:MM:SS (in now's location)
//   - RFC3339: 2018-10-27T10:00:00Z (can specify any timezone)
//   - HH:MM, HH:MM:SS, H:MMPM, H:MM:SSPM (next occurrence at or after now)
//
// Returns the parsed time or an error if the format is invalid.
func ParseTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := now.Location()

	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}

	if t, err := time.ParseInLocation(time.DateTime, s, loc); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	for _, layout := range clockLayouts {
		clock, err := time.ParseInLocation(layout, strings.ToUpper(s), loc)
		if err != nil {
			continue
		}
		t := time.Date(now.Year(), now.Month(), now.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
		if t.Before(now) {
			t = t.AddDate(0, 0, 1)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time format %q (expected HH:MM, YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, or RFC3339)", s)
}

// SecondsUntil returns the whole number of seconds from now until the time
// described by s, rounded up. Times in the past are rejected.
func SecondsUntil(s string, now time.Time) (uint64, error) {
	target, err := ParseTime(s, now)
	if err != nil {
		return 0, err
	}

	d := target.Sub(now)
	if d < 0 {
		return 0, fmt.Errorf("time %q is in the past", s)
	}

	seconds := d / time.Second
	if d%time.Second != 0 {
		seconds++
	}
	return uint64(seconds), nil
}
