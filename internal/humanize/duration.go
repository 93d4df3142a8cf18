// Package humanize renders durations and timestamps for people.
package humanize

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerMonth  = 30 * secondsPerDay
	secondsPerYear   = 365 * secondsPerDay
)

// boundaries are checked in order; a unit is used while the value is below
// the next unit's size.
var boundaries = []struct {
	name  string
	size  uint64
	below uint64
}{
	{"minute", secondsPerMinute, secondsPerHour},
	{"hour", secondsPerHour, secondsPerDay},
	{"day", secondsPerDay, secondsPerMonth},
	{"month", secondsPerMonth, secondsPerYear},
}

// Duration formats a number of seconds as nested English text, using the
// largest unit that fits and recursing on the remainder. For example 3723
// becomes "1 hour 2 minutes and 3 seconds". A month is 30 days and a year
// is 365 days.
func Duration(seconds uint64) string {
	whole, remainder, unit := floorUnit(seconds)

	if whole != 1 {
		unit += "s"
	}

	if remainder == 0 {
		return fmt.Sprintf("%d %s", whole, unit)
	}

	if remainder < secondsPerMinute {
		return fmt.Sprintf("%d %s and %s", whole, unit, Duration(remainder))
	}
	return fmt.Sprintf("%d %s %s", whole, unit, Duration(remainder))
}

func floorUnit(seconds uint64) (whole, remainder uint64, unit string) {
	if seconds < secondsPerMinute {
		return seconds, 0, "second"
	}
	for _, b := range boundaries {
		if seconds < b.below {
			return seconds / b.size, seconds % b.size, b.name
		}
	}
	return seconds / secondsPerYear, seconds % secondsPerYear, "year"
}

// timestampLayout renders like "October 27, 2018 3:04:05 PM".
const timestampLayout = "January _2, 2006 3:04:05 PM"

// Timestamp formats t in its own location for start and finish banners.
func Timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
