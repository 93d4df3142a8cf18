package countdown

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestNewOutput(t *testing.T) {
	tests := []struct {
		name     string
		colorize bool
	}{
		{name: "with colors", colorize: true},
		{name: "without colors", colorize: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := NewOutput(&bytes.Buffer{}, &bytes.Buffer{}, tt.colorize)
			colorFuncs := []struct {
				name string
				fn   func(string) string
			}{
				{"cyan", output.cyan},
				{"green", output.green},
				{"yellow", output.yellow},
			}
			for _, cf := range colorFuncs {
				if cf.fn == nil {
					t.Fatalf("NewOutput() %s color func is nil", cf.name)
				}
				s := cf.fn("test")
				if tt.colorize {
					if s == "test" {
						t.Errorf("NewOutput() expected %s color func to return ANSI codes", cf.name)
					}
				} else if s != "test" {
					t.Errorf("NewOutput() expected %s color func to return plain string, got %q", cf.name, s)
				}
			}
		})
	}
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{
			name:  "single frame",
			texts: []string{"5 seconds left"},
			want:  "\r" + hideCursor + eraseLine + "5 seconds left",
		},
		{
			name:  "shorter frame is padded",
			texts: []string{"10 seconds left", "9 seconds left"},
			want: "\r" + hideCursor + eraseLine + "10 seconds left" +
				"\r" + hideCursor + eraseLine + "9 seconds left ",
		},
		{
			name:  "longer frame is not padded",
			texts: []string{"1 second left", "1 minute left"},
			want: "\r" + hideCursor + eraseLine + "1 second left" +
				"\r" + hideCursor + eraseLine + "1 minute left",
		},
		{
			name:  "padding tracks the previous frame only",
			texts: []string{"1 minute and 1 second left", "1 minute left", "59 seconds left"},
			want: "\r" + hideCursor + eraseLine + "1 minute and 1 second left" +
				"\r" + hideCursor + eraseLine + "1 minute left" + strings.Repeat(" ", 13) +
				"\r" + hideCursor + eraseLine + "59 seconds left",
		},
		{
			name:  "padding counts runes not bytes",
			texts: []string{"thé: 5 seconds left", "tea: 4 seconds left"},
			want: "\r" + hideCursor + eraseLine + "thé: 5 seconds left" +
				"\r" + hideCursor + eraseLine + "tea: 4 seconds left",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			output := NewOutput(stdout, &bytes.Buffer{}, false)

			for _, text := range tt.texts {
				output.Frame(text)
			}

			if got := stdout.String(); got != tt.want {
				t.Errorf("Frame() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRestore(t *testing.T) {
	stdout := &bytes.Buffer{}
	output := NewOutput(stdout, &bytes.Buffer{}, false)

	output.HideCursor()
	output.Frame("3 seconds left")

	if !output.Restore() {
		t.Errorf("Restore() = false on first call, want true")
	}
	if output.Restore() {
		t.Errorf("Restore() = true on second call, want false")
	}

	// Nothing that hides the cursor may follow a restore.
	output.Frame("2 seconds left")
	output.HideCursor()

	got := stdout.String()
	if n := strings.Count(got, showCursor); n != 1 {
		t.Errorf("Restore() wrote show-cursor %d times, want 1", n)
	}
	if !strings.HasSuffix(got, showCursor+"\n") {
		t.Errorf("output %q does not end with show-cursor", got)
	}
	if strings.Contains(got, "2 seconds left") {
		t.Errorf("Frame() after Restore() was written: %q", got)
	}
}

func TestRestoreConcurrent(t *testing.T) {
	stdout := &bytes.Buffer{}
	output := NewOutput(stdout, &bytes.Buffer{}, false)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if output.Restore() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("Restore() returned true %d times, want 1", wins)
	}
	if n := strings.Count(stdout.String(), showCursor); n != 1 {
		t.Errorf("show-cursor written %d times, want 1", n)
	}
}

func TestBanner(t *testing.T) {
	tests := []struct {
		name  string
		label string
		value string
		want  string
	}{
		{"label only", "Counting up...", "", "Counting up...\n"},
		{"label and value", "Note:", "tea", "Note: tea\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			output := NewOutput(stdout, &bytes.Buffer{}, false)

			output.Banner(tt.label, tt.value)

			if got := stdout.String(); got != tt.want {
				t.Errorf("Banner(%q, %q) = %q, want %q", tt.label, tt.value, got, tt.want)
			}
		})
	}
}

func TestWarningf(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	output := NewOutput(stdout, stderr, false)

	output.Warningf("alarm failed: %s", "exit status 1")

	if got, want := stderr.String(), "Warning: alarm failed: exit status 1\n"; got != want {
		t.Errorf("Warningf() = %q, want %q", got, want)
	}
	if stdout.Len() != 0 {
		t.Errorf("Warningf() wrote to stdout: %q", stdout.String())
	}
}
