// Package ticker counts elapsed whole seconds on a background cadence.
package ticker

import (
	"context"
	"sync/atomic"
	"time"
)

// Source increments a shared counter once per interval while Run is active.
// Run is the only writer; any goroutine may call Elapsed.
type Source struct {
	interval time.Duration
	now      func() time.Time
	count    atomic.Uint64
}

// New returns a Source that ticks once per second.
func New() *Source {
	return newSource(time.Second, time.Now)
}

func newSource(interval time.Duration, now func() time.Time) *Source {
	return &Source{
		interval: interval,
		now:      now,
	}
}

// Run ticks until ctx is done. A Source must only be run once.
//
// Each wake-up advances the counter one step at a time up to the number of
// intervals elapsed since Run started, so a late wake-up catches up instead
// of dropping ticks, and the counter never runs ahead of the clock.
func (s *Source) Run(ctx context.Context) error {
	start := s.now()

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.advance(s.now().Sub(start))
		}
	}
}

func (s *Source) advance(since time.Duration) {
	if since < 0 {
		return
	}
	due := uint64(since / s.interval)
	for s.count.Load() < due {
		s.count.Add(1)
	}
}

// Elapsed returns the number of ticks observed so far.
func (s *Source) Elapsed() uint64 {
	return s.count.Load()
}
