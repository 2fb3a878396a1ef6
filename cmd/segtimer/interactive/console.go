// Package interactive provides the local command-line console for segtimer.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/segtimer/segtimer-go/pkg/control"
	"github.com/segtimer/segtimer-go/pkg/eventlog"
	"github.com/segtimer/segtimer-go/pkg/history"
)

// Console handles interactive mode for segtimer.
type Console struct {
	ctl   *control.Controller
	store *history.Store
	rl    *readline.Instance
	out   io.Writer
}

// New creates a console reading from the terminal. store may be nil.
func New(ctl *control.Controller, store *history.Store) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "segtimer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{ctl: ctl, store: store, rl: rl, out: rl.Stdout()}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	defer c.rl.Close()

	// Readline blocks on the terminal; closing it unblocks Run on shutdown.
	stop := context.AfterFunc(ctx, func() { c.rl.Close() })
	defer stop()

	ctx = eventlog.WithOrigin(ctx, eventlog.Origin{Source: eventlog.SourceConsole})
	c.printHelp()

	for {
		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		if quit := c.Execute(ctx, line); quit {
			return nil
		}
	}
}

// Execute runs one command line and reports whether the user asked to quit.
func (c *Console) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "start":
		c.cmdStatus(ctx, "start")

	case "stop":
		c.cmdStatus(ctx, "stop")

	case "interval", "i":
		c.cmdInterval(ctx, args)

	case "status", "s":
		c.cmdShow()

	case "runs", "r":
		c.cmdRuns(args)

	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Timer Commands:
  start              - Start the countdown from the configured duration
  stop               - Stop and reset the countdown
  interval <seconds> - Set the countdown duration (0-5999)
  status             - Show the timer
  runs [n]           - Show the last n runs (default 10)
  quit               - Exit`)
}

func (c *Console) cmdStatus(ctx context.Context, action string) {
	if err := c.ctl.HandleTimerStatus(ctx, action); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.cmdShow()
}

func (c *Console) cmdInterval(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: interval <seconds>")
		return
	}
	if err := c.ctl.HandleTimerInterval(ctx, args[0]); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Interval set to %s\n", c.ctl.Status().Clock.Format())
}

func (c *Console) cmdShow() {
	snap := c.ctl.Status()
	fmt.Fprintf(c.out, "%s  %s  (default %ds)", snap.Phase, snap.Clock.Format(), snap.DefaultSeconds)
	if snap.RunID != "" {
		fmt.Fprintf(c.out, "  run %s", shortID(snap.RunID))
	}
	fmt.Fprintln(c.out)
}

func (c *Console) cmdRuns(args []string) {
	if c.store == nil {
		fmt.Fprintln(c.out, "History is disabled")
		return
	}

	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintln(c.out, "Usage: runs [n]")
			return
		}
		limit = n
	}

	runs, err := c.store.ListRuns(limit, 0)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Fprintln(c.out, "No runs recorded")
		return
	}

	fmt.Fprintf(c.out, "%-10s %-8s %-20s %-10s %s\n", "RUN", "SECONDS", "STARTED", "OUTCOME", "DURATION")
	for _, run := range runs {
		outcome := string(run.Outcome)
		if outcome == "" {
			outcome = "running"
		}
		fmt.Fprintf(c.out, "%-10s %-8d %-20s %-10s %s\n",
			shortID(run.ID),
			run.Seconds,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			outcome,
			run.Duration)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
