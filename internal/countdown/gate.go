package countdown

import (
	"context"
	"log/slog"

	"github.com/dashed/countdown/internal/logging"
)

// Outcome is how the counting phase ended.
type Outcome int

const (
	// CompletedNormally means the timer ran to completion.
	CompletedNormally Outcome = iota
	// Interrupted means an external termination request won the race.
	Interrupted
)

func (o Outcome) String() string {
	switch o {
	case CompletedNormally:
		return "completed"
	case Interrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Gate races a timer run against interruption of its context and decides
// exactly once how the counting phase ended.
type Gate struct {
	out *Output
	log *slog.Logger
}

// NewGate creates a Gate that restores the cursor through out when the
// run is interrupted. A nil logger discards log output.
func NewGate(out *Output, log *slog.Logger) *Gate {
	if log == nil {
		log = logging.NewNop()
	}
	return &Gate{out: out, log: log}
}

// Run starts run on its own goroutine and waits for either run to return
// or ctx to be done, whichever happens first.
//
// run receives a context that is not cancelled by ctx; the Gate cancels it
// only after it has taken over terminal cleanup, so an interrupted run never
// gets a chance to hide the cursor again. Run does not wait for an
// interrupted run to return.
func (g *Gate) Run(ctx context.Context, run func(context.Context) error) (Outcome, error) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	done := make(chan error, 1)
	go func() {
		done <- run(runCtx)
	}()

	select {
	case err := <-done:
		cancel()
		if err != nil {
			// The run stopped without finishing; never treat that as done.
			g.out.Restore()
			return Interrupted, err
		}
		g.log.Debug("timer completed")
		return CompletedNormally, nil

	case <-ctx.Done():
		g.out.Restore()
		cancel()
		g.log.Debug("timer interrupted", "cause", context.Cause(ctx))
		return Interrupted, nil
	}
}
