package timeparse

import (
	"errors"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint64
		wantErr bool
	}{
		// Bare numbers
		{"bare number", "90", 90, false},
		{"zero", "0", 0, false},
		{"bare with spaces", "  42\t ", 42, false},

		// Single components
		{"seconds", "10s", 10, false},
		{"minutes word", "2 minutes", 120, false},
		{"minute singular", "1 minute", 60, false},
		{"hours short", "2h", 7200, false},
		{"hrs", "3hrs", 10800, false},
		{"hr", "1 hr", 3600, false},
		{"mins", "5mins", 300, false},
		{"min", "5 min", 300, false},
		{"secs", "7secs", 7, false},
		{"sec", "7 sec", 7, false},
		{"second", "1second", 1, false},
		{"tab before unit", "4\tm", 240, false},

		// Combined components
		{"canonical", "1h 30m 10s", 5410, false},
		{"no separators", "1h30m10s", 5410, false},
		{"any order", "10s 1h", 3610, false},
		{"repeated adds", "30s 30s", 60, false},
		{"long words", "1 hour 2 minutes 3 seconds", 3723, false},
		{"leading and trailing space", "  1m  ", 60, false},

		// Case-insensitivity
		{"uppercase", "1H 1MIN 1SEC", 3661, false},
		{"mixed case", "1Hour 1Min 1Sec", 3661, false},

		// Error cases
		{"empty string", "", 0, true},
		{"only whitespace", "   ", 0, true},
		{"letters", "abc", 0, true},
		{"unknown unit", "1 fortnight", 0, true},
		{"unit without number", "h", 0, true},
		{"trailing number", "1h 30", 0, true},
		{"trailing garbage", "1h x", 0, true},
		{"negative", "-10s", 0, true},
		{"fractional", "1.5h", 0, true},
		{"milliseconds", "100ms", 0, true},
		{"number overflow", "18446744073709551616", 0, true},
		{"component overflow", "18446744073709551615h", 0, true},
		{"sum overflow", "18446744073709551615s 1s", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDurationCaseInsensitive(t *testing.T) {
	lower, err := ParseDuration("1h 1min 1sec")
	if err != nil {
		t.Fatalf("ParseDuration() unexpected error: %v", err)
	}
	upper, err := ParseDuration("1H 1MIN 1SEC")
	if err != nil {
		t.Fatalf("ParseDuration() unexpected error: %v", err)
	}
	if lower != upper {
		t.Errorf("ParseDuration() lower = %d, upper = %d", lower, upper)
	}
}

func TestParseDurationError(t *testing.T) {
	tests := []struct {
		input   string
		wantPos int
	}{
		{"", 0},
		{"abc", 0},
		{"1 fortnight", 2},
		{"1h 30", 3},
		{"  99999999999999999999", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseDuration(tt.input)

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("ParseDuration(%q) error = %v, want *ParseError", tt.input, err)
			}
			if perr.Input != tt.input {
				t.Errorf("ParseError.Input = %q, want %q", perr.Input, tt.input)
			}
			if perr.Pos != tt.wantPos {
				t.Errorf("ParseError.Pos = %d, want %d", perr.Pos, tt.wantPos)
			}
		})
	}
}
