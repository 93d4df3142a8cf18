package countdown

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mgutz/ansi"
	"github.com/muesli/termenv"
)

const (
	hideCursor = termenv.CSI + termenv.HideCursorSeq
	showCursor = termenv.CSI + termenv.ShowCursorSeq
	eraseLine  = termenv.CSI + termenv.EraseEntireLineSeq
)

// Output is the terminal sink for the countdown. It owns every escape
// sequence written to the terminal and keeps the cursor visible on exit.
type Output struct {
	mu       sync.Mutex
	stdout   io.Writer
	stderr   io.Writer
	lastLen  int // rune width of the previous frame
	restored bool

	cyan   func(string) string
	green  func(string) string
	yellow func(string) string
}

// NewOutput creates a new Output with optional color support.
func NewOutput(stdout, stderr io.Writer, colorize bool) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout: stdout,
		stderr: stderr,
		cyan:   color("cyan"),
		green:  color("green+b"),
		yellow: color("yellow"),
	}
}

// HideCursor hides the terminal cursor until Restore is called.
func (o *Output) HideCursor() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.restored {
		return
	}
	fmt.Fprint(o.stdout, hideCursor)
}

// Frame redraws the current line with text. When text is shorter than the
// previous frame it is padded with spaces so no stale characters remain.
// Frames written after Restore are dropped.
func (o *Output) Frame(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.restored {
		return
	}

	// Padding is counted in runes, one terminal cell each.
	width := utf8.RuneCountInString(text)
	var pad string
	if n := o.lastLen - width; n > 0 {
		pad = strings.Repeat(" ", n)
	}
	o.lastLen = width

	fmt.Fprint(o.stdout, "\r"+hideCursor+eraseLine+o.green(text)+pad)
}

// Restore shows the cursor and ends the current line. Only the first call
// writes anything; it reports whether this call was the one that did.
func (o *Output) Restore() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.restored {
		return false
	}
	o.restored = true
	fmt.Fprint(o.stdout, showCursor+"\n")
	return true
}

// Banner writes a status line such as "Began counting at <time>" to stdout.
func (o *Output) Banner(label, value string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if value == "" {
		fmt.Fprintln(o.stdout, label)
		return
	}
	fmt.Fprintf(o.stdout, "%s %s\n", label, o.cyan(value))
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}
