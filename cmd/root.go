package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/dashed/countdown/internal/alarm"
	"github.com/dashed/countdown/internal/config"
	"github.com/dashed/countdown/internal/countdown"
	"github.com/dashed/countdown/internal/humanize"
	"github.com/dashed/countdown/internal/logging"
	"github.com/dashed/countdown/internal/ticker"
	"github.com/dashed/countdown/internal/timeparse"
	"github.com/spf13/cobra"
)

// colorMode represents when to use colored output.
type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

// String is used both by fmt.Print and by Cobra in help text.
func (c *colorMode) String() string {
	return string(*c)
}

// Set must have pointer receiver to validate and set the value.
func (c *colorMode) Set(v string) error {
	switch v {
	case "auto", "always", "never":
		*c = colorMode(v)
		return nil
	default:
		return fmt.Errorf("must be one of \"auto\", \"always\", or \"never\"")
	}
}

// Type is only used in help text.
func (c *colorMode) Type() string {
	return "colorMode"
}

var (
	version = "dev"

	// Flags.
	color       = colorAuto
	note        string
	countUp     bool
	until       string
	bell        bool
	alarmCmd    string
	alarmSound  string
	alarmRepeat int
	webhook     string
	configPath  string
	debug       bool
)

var rootCmd = &cobra.Command{
	Use:   "countdown [<duration>]",
	Short: "Count down or count up in the terminal",
	Long: `countdown shows a live countdown (or count-up) timer on a single terminal line.

<duration> is a number of seconds or a list of amounts with units:
  h, hr, hrs, hour, hours
  m, min, mins, minute, minutes
  s, sec, secs, second, seconds

Units are case-insensitive and amounts are added together. Without a
duration (and without --until) countdown counts up until interrupted.

When a countdown finishes the alarm rings until interrupted, unless
--alarm-repeat limits it.

Examples:
  countdown 90
  countdown 25m
  countdown "1h 30m 10s"
  countdown --note "tea" 3min
  countdown --until 17:30
  countdown -u`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("note") && strings.TrimSpace(note) == "" {
			return fmt.Errorf("invalid note: must not be empty")
		}

		if len(args) == 1 && strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("invalid duration: must not be empty")
		}

		if until != "" {
			if len(args) == 1 {
				return fmt.Errorf("--until cannot be combined with a duration")
			}
			if countUp {
				return fmt.Errorf("--until cannot be combined with --count-up")
			}
		}

		if alarmRepeat < 0 {
			return fmt.Errorf("--alarm-repeat cannot be negative, got %d", alarmRepeat)
		}

		return nil
	},
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&note, "note", "",
		"note to show with the timer")
	rootCmd.Flags().BoolVarP(&countUp, "count-up", "u", false,
		"count up instead of down")
	rootCmd.Flags().StringVar(&until, "until", "",
		"count down until a time (e.g., 17:30, 5:30PM, 2024-12-31 23:59:59)")
	rootCmd.Flags().Var(&color, "color",
		"colorize output: auto, always, never")
	rootCmd.Flags().BoolVar(&bell, "bell", true,
		"ring the terminal bell when the countdown finishes")
	rootCmd.Flags().StringVar(&alarmCmd, "alarm-cmd", "",
		"shell command to run on every alarm ring")
	rootCmd.Flags().StringVar(&alarmSound, "alarm-sound", "",
		"sound file glob to play on every alarm ring (supports ** and {a,b})")
	rootCmd.Flags().IntVar(&alarmRepeat, "alarm-repeat", 0,
		"number of alarm rings (0 rings until interrupted)")
	rootCmd.Flags().StringVar(&webhook, "webhook", "",
		"URL to POST a JSON event to when the countdown finishes")
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"config file (default: $XDG_CONFIG_HOME/countdown/config.yml)")
	rootCmd.Flags().BoolVar(&debug, "debug", false,
		"write debug logs to stderr")
}

func Execute() error {
	return rootCmd.Execute()
}

// resolveMode turns the positional duration, --count-up and --until into a
// counting mode. A supplied duration is parsed even when counting up so a
// malformed expression is always reported.
func resolveMode(args []string, countUp bool, until string, now time.Time) (countdown.Mode, error) {
	var target uint64
	haveTarget := false

	switch {
	case len(args) == 1:
		input := strings.TrimSpace(args[0])
		seconds, err := timeparse.ParseDuration(input)
		if err != nil {
			return countdown.Mode{}, fmt.Errorf("unable to parse duration: %w", err)
		}
		target, haveTarget = seconds, true

	case until != "":
		seconds, err := timeparse.SecondsUntil(until, now)
		if err != nil {
			return countdown.Mode{}, fmt.Errorf("invalid --until %q: %w", until, err)
		}
		target, haveTarget = seconds, true
	}

	if countUp || !haveTarget {
		return countdown.CountUp(), nil
	}
	return countdown.CountDown(target), nil
}

// alarmOptions merges config-file defaults with flags set on the command line.
func alarmOptions(cmd *cobra.Command, cfg config.Alarm) alarm.Options {
	opts := alarm.Options{
		Bell:     cfg.Bell,
		Command:  cfg.Command,
		Sound:    cfg.Sound,
		Repeat:   cfg.Repeat,
		Interval: cfg.Interval,
		Webhook:  cfg.Webhook,
	}

	flags := cmd.Flags()
	if flags.Changed("bell") {
		opts.Bell = bell
	}
	if flags.Changed("alarm-cmd") {
		opts.Command = alarmCmd
	}
	if flags.Changed("alarm-sound") {
		opts.Sound = alarmSound
	}
	if flags.Changed("alarm-repeat") {
		opts.Repeat = alarmRepeat
	}
	if flags.Changed("webhook") {
		opts.Webhook = webhook
	}

	return opts
}

// colorSetting picks the flag value when given, else the config value.
func colorSetting(cmd *cobra.Command, cfg config.Config) colorMode {
	if cmd.Flags().Changed("color") {
		return color
	}
	return colorMode(cfg.Color)
}

func newLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := newLogger(debug)

	mode, err := resolveMode(args, countUp, until, time.Now())
	if err != nil {
		return err
	}

	terminal := term.FromEnv()

	var colorize bool
	switch colorSetting(cmd, cfg) {
	case colorAlways:
		colorize = true
	case colorNever:
		colorize = false
	case colorAuto:
		colorize = terminal.IsColorEnabled()
	}

	out := countdown.NewOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), colorize)

	if mode.IsCountUp() {
		out.Banner("Counting up...", "")
	} else {
		out.Banner("Counting down", humanize.Duration(mode.Target()))
	}
	began := time.Now()
	out.Banner("Began counting at", humanize.Timestamp(began))
	if note != "" {
		out.Banner("Note:", note)
	}

	engine := countdown.NewEngine(out, ticker.New(), mode, log)
	outcome, err := countdown.NewGate(out, log).Run(ctx, engine.Run)
	if err != nil {
		return err
	}
	log.Debug("counting ended", "outcome", outcome)
	if outcome == countdown.Interrupted {
		return nil
	}

	opts := alarmOptions(cmd, cfg.Alarm)
	opts.Bell = opts.Bell && terminal.IsTerminalOutput()

	a := alarm.New(cmd.OutOrStdout(), out, opts, log)
	return a.Ring(ctx, alarm.Event{
		Note:       note,
		Mode:       mode.String(),
		Seconds:    mode.Target(),
		BeganAt:    began,
		FinishedAt: time.Now(),
	})
}
