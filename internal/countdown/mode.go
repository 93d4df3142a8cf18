// Package countdown drives the live terminal timer: the render loop, its
// terminal sink and the race between completion and interruption.
package countdown

import "github.com/dashed/countdown/internal/humanize"

// Mode selects counting up without bound or down to a target.
// The zero value counts down from zero.
type Mode struct {
	up     bool
	target uint64
}

// CountUp returns a Mode that displays elapsed seconds forever.
func CountUp() Mode {
	return Mode{up: true}
}

// CountDown returns a Mode that displays the seconds left until target.
func CountDown(target uint64) Mode {
	return Mode{target: target}
}

// IsCountUp reports whether m counts up.
func (m Mode) IsCountUp() bool {
	return m.up
}

// Target returns the countdown length in seconds; zero when counting up.
func (m Mode) Target() uint64 {
	return m.target
}

// Display returns the seconds to show after elapsed ticks.
func (m Mode) Display(elapsed uint64) uint64 {
	if m.up {
		return elapsed
	}
	if elapsed >= m.target {
		return 0
	}
	return m.target - elapsed
}

// Done reports whether a countdown has reached zero. Counting up never ends.
func (m Mode) Done(elapsed uint64) bool {
	return !m.up && elapsed >= m.target
}

// Suffix is appended to the rendered duration.
func (m Mode) Suffix() string {
	if m.up {
		return "passed"
	}
	return "left"
}

func (m Mode) String() string {
	if m.up {
		return "count-up"
	}
	return "count-down"
}

// Line renders the frame text for elapsed ticks, e.g. "2 minutes left".
func (m Mode) Line(elapsed uint64) string {
	return humanize.Duration(m.Display(elapsed)) + " " + m.Suffix()
}
