// Package alarm signals that a timer has finished.
package alarm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dashed/countdown/internal/logging"
	"golang.org/x/sync/errgroup"
)

// defaultInterval replaces a non-positive Options.Interval.
const defaultInterval = time.Second

// players are tried in order to play a sound file.
var players = []string{"afplay", "paplay", "aplay"}

// Options configures how the alarm rings.
type Options struct {
	Bell     bool          // write the terminal bell
	Command  string        // shell command run on every ring
	Sound    string        // glob of sound files; the first match is played
	Repeat   int           // number of rings; 0 rings until the context is done
	Interval time.Duration // pause between rings; defaults to one second
	Webhook  string        // URL that receives one Event per finish
}

// Warner reports non-fatal problems to the user.
type Warner interface {
	Warningf(format string, args ...any)
}

// Alarm rings after a timer completes.
type Alarm struct {
	opts   Options
	stdout io.Writer
	warn   Warner
	log    *slog.Logger
	client *http.Client

	exec     func(ctx context.Context, name string, args ...string) error
	lookPath func(file string) (string, error)
}

// New creates an Alarm. A nil logger discards log output.
func New(stdout io.Writer, warn Warner, opts Options, log *slog.Logger) *Alarm {
	if log == nil {
		log = logging.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	return &Alarm{
		opts:     opts,
		stdout:   stdout,
		warn:     warn,
		log:      log,
		client:   &http.Client{Timeout: 10 * time.Second},
		exec:     runCommand,
		lookPath: exec.LookPath,
	}
}

// Ring posts ev to the webhook, if any, and rings until the configured
// repeat count is reached or ctx is done. Failures are reported as
// warnings; cancellation is not an error.
func (a *Alarm) Ring(ctx context.Context, ev Event) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.opts.Webhook != "" {
		g.Go(func() error {
			if err := a.notify(gctx, ev); err != nil {
				a.log.Warn("webhook failed", "url", a.opts.Webhook, "error", err)
				a.warn.Warningf("webhook: %v", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		a.ring(gctx)
		return nil
	})

	return g.Wait()
}

func (a *Alarm) ring(ctx context.Context) {
	play, err := a.player()
	if err != nil {
		a.warn.Warningf("alarm: %v", err)
	}
	if !a.opts.Bell && play == nil {
		return
	}

	for i := 0; a.opts.Repeat <= 0 || i < a.opts.Repeat; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(a.opts.Interval):
			}
		}
		if ctx.Err() != nil {
			return
		}

		a.log.Debug("ringing", "ring", i+1)
		if a.opts.Bell {
			fmt.Fprint(a.stdout, "\a")
		}
		if play == nil {
			continue
		}

		if err := play(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			a.warn.Warningf("alarm: %v", err)
			play = nil
			if !a.opts.Bell {
				return
			}
		}
	}
}

// player returns the action run on every ring, or nil when only the bell
// (or nothing) is configured.
func (a *Alarm) player() (func(context.Context) error, error) {
	if a.opts.Command != "" {
		return func(ctx context.Context) error {
			return a.exec(ctx, "sh", "-c", a.opts.Command)
		}, nil
	}

	if a.opts.Sound == "" {
		return nil, nil
	}

	file, err := resolveSound(a.opts.Sound)
	if err != nil {
		return nil, err
	}

	for _, name := range players {
		path, err := a.lookPath(name)
		if err != nil {
			continue
		}
		return func(ctx context.Context) error {
			return a.exec(ctx, path, file)
		}, nil
	}

	return nil, fmt.Errorf("no audio player found (tried %s)", strings.Join(players, ", "))
}

// resolveSound returns the first file, in lexical order, matching pattern.
// The pattern may use ** and {a,b} alternatives.
func resolveSound(pattern string) (string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return "", fmt.Errorf("invalid sound pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no sound file matches %q", pattern)
	}

	slices.Sort(matches)
	return matches[0], nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
