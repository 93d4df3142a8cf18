// Package timeparse provides duration expression and wall-clock time parsing.
package timeparse

import (
	"fmt"
	"math"
	"strings"
)

// unitClass is a set of case-insensitive spellings sharing a multiplier.
// Spellings are ordered longest first so "minutes" wins over "min".
type unitClass struct {
	names      []string
	multiplier uint64
}

// Classes are tried in this order.
var unitClasses = []unitClass{
	{names: []string{"hours", "hour", "hrs", "hr", "h"}, multiplier: 3600},
	{names: []string{"minutes", "minute", "mins", "min", "m"}, multiplier: 60},
	{names: []string{"seconds", "second", "secs", "sec", "s"}, multiplier: 1},
}

// ParseError reports a malformed duration expression.
type ParseError struct {
	Input  string
	Pos    int // byte offset into Input
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid duration %q at position %d: %s", e.Input, e.Pos, e.Reason)
}

// ParseDuration parses a duration expression into a whole number of seconds.
//
// The expression is either one or more "<number> <unit>" components, summed,
// or a bare number of seconds. Whitespace (spaces and tabs) may appear
// between any tokens. Examples: "90", "2 minutes", "1h 30m 10s", "30s 30s".
func ParseDuration(s string) (uint64, error) {
	p := &parser{input: s}
	p.skipSpace()

	total, ok, err := p.components()
	if err != nil {
		return 0, err
	}
	if !ok {
		total, ok, err = p.number()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, p.errorf("expected a number")
		}
	}

	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, p.errorf("unexpected %q", p.input[p.pos:])
	}

	return total, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Input: p.input, Pos: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// components matches component+ and sums it. On no match the position is
// left untouched so the caller can fall back to a bare number.
func (p *parser) components() (uint64, bool, error) {
	var total uint64
	matched := false

	for {
		start := p.pos
		seconds, ok, err := p.component()
		if err != nil {
			return 0, false, err
		}
		if !ok {
			p.pos = start
			break
		}
		if total > math.MaxUint64-seconds {
			p.pos = start
			return 0, false, p.errorf("value too large")
		}
		total += seconds
		matched = true
	}

	return total, matched, nil
}

// component matches ws* number ws* unit.
func (p *parser) component() (uint64, bool, error) {
	p.skipSpace()
	start := p.pos

	n, ok, err := p.number()
	if err != nil || !ok {
		return 0, false, err
	}

	p.skipSpace()
	multiplier, ok := p.unit()
	if !ok {
		return 0, false, nil
	}

	if n > math.MaxUint64/multiplier {
		p.pos = start
		return 0, false, p.errorf("value too large")
	}

	return n * multiplier, true, nil
}

// number matches one or more decimal digits.
func (p *parser) number() (uint64, bool, error) {
	start := p.pos
	var n uint64

	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		d := uint64(p.input[p.pos] - '0')
		if n > (math.MaxUint64-d)/10 {
			p.pos = start
			return 0, false, p.errorf("number too large")
		}
		n = n*10 + d
		p.pos++
	}

	return n, p.pos > start, nil
}

// unit matches a unit spelling and returns its multiplier.
func (p *parser) unit() (uint64, bool) {
	rest := p.input[p.pos:]
	for _, class := range unitClasses {
		for _, name := range class.names {
			if len(rest) >= len(name) && strings.EqualFold(rest[:len(name)], name) {
				p.pos += len(name)
				return class.multiplier, true
			}
		}
	}
	return 0, false
}
