package countdown

import (
	"context"
	"log/slog"
	"time"

	"github.com/dashed/countdown/internal/humanize"
	"github.com/dashed/countdown/internal/logging"
	"golang.org/x/sync/errgroup"
)

// pollInterval is how often the render loop samples the tick counter.
const pollInterval = 250 * time.Millisecond

// TickSource counts elapsed seconds while Run is active.
type TickSource interface {
	Run(ctx context.Context) error
	Elapsed() uint64
}

// Engine renders a running timer until a countdown reaches zero or its
// context is cancelled.
type Engine struct {
	out   *Output
	ticks TickSource
	mode  Mode
	log   *slog.Logger

	poll time.Duration
	now  func() time.Time
}

// NewEngine creates an Engine. A nil logger discards log output.
func NewEngine(out *Output, ticks TickSource, mode Mode, log *slog.Logger) *Engine {
	if log == nil {
		log = logging.NewNop()
	}
	return &Engine{
		out:   out,
		ticks: ticks,
		mode:  mode,
		log:   log,
		poll:  pollInterval,
		now:   time.Now,
	}
}

// Run starts the tick source and the render loop and blocks until the
// countdown finishes or ctx is cancelled.
//
// On a finished countdown the tick source is stopped, the cursor restored
// and the finish time printed, and Run returns nil. On cancellation Run
// returns the context's error and leaves terminal cleanup to the caller.
func (e *Engine) Run(ctx context.Context) error {
	tickCtx, stopTicks := context.WithCancel(ctx)
	defer stopTicks()

	e.log.Debug("starting timer", "mode", e.mode, "target", e.mode.Target())

	g, gctx := errgroup.WithContext(tickCtx)
	g.Go(func() error {
		return e.ticks.Run(gctx)
	})
	g.Go(func() error {
		defer stopTicks()
		return e.render(gctx)
	})

	if err := g.Wait(); err != nil {
		e.log.Debug("timer stopped", "err", err)
		return err
	}

	if !e.out.Restore() {
		// Interrupted between the last frame and here.
		return context.Canceled
	}
	e.out.Banner("Finished counting at", humanize.Timestamp(e.now()))
	e.log.Debug("timer finished", "elapsed", e.ticks.Elapsed())

	return nil
}

// render draws the initial frame and then redraws whenever the tick counter
// has advanced. Polls that observe no new ticks are coalesced, and counter
// values lower than one already drawn are ignored.
func (e *Engine) render(ctx context.Context) error {
	e.out.HideCursor()

	var seen uint64
	e.out.Frame(e.mode.Line(seen))
	if e.mode.Done(seen) {
		return nil
	}

	t := time.NewTicker(e.poll)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}

		n := e.ticks.Elapsed()
		if n <= seen {
			continue
		}
		seen = n

		e.out.Frame(e.mode.Line(seen))
		if e.mode.Done(seen) {
			return nil
		}
	}
}
