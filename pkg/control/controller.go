package control

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/segtimer/segtimer-go/pkg/digits"
	"github.com/segtimer/segtimer-go/pkg/display"
	"github.com/segtimer/segtimer-go/pkg/eventlog"
	"github.com/segtimer/segtimer-go/pkg/timer"
)

// Action is a timerStatus command.
type Action uint8

const (
	ActionStart Action = iota
	ActionStop
)

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	default:
		return "unknown"
	}
}

// ParseAction parses start or stop, ignoring case.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(s) {
	case "start":
		return ActionStart, nil
	case "stop":
		return ActionStop, nil
	default:
		return 0, &ValidationError{Field: "a", Value: s, Message: MsgInvalidArgument, Err: ErrInvalidAction}
	}
}

// ParseSeconds parses a non-negative base-10 number of seconds within the
// 99 minute display range.
func ParseSeconds(raw string) (int, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, tooHigh(raw)
		}
		return 0, &ValidationError{Field: "seconds", Value: raw, Message: MsgInvalidArgument, Err: ErrInvalidSeconds}
	}
	if n > digits.MaxSeconds {
		return 0, tooHigh(raw)
	}
	return int(n), nil
}

func tooHigh(raw string) error {
	return &ValidationError{
		Field:   "seconds",
		Value:   raw,
		Message: MsgSecondsTooHigh,
		Err:     digits.ErrConfiguration,
	}
}

// Config holds controller dependencies.
type Config struct {
	State   *timer.State
	Display display.Display
	Logger  *slog.Logger
}

// Controller applies control requests to a timer and its display.
type Controller struct {
	state   *timer.State
	display display.Display
	logger  *slog.Logger
}

// New creates a controller.
func New(cfg Config) *Controller {
	c := &Controller{
		state:   cfg.State,
		display: cfg.Display,
		logger:  cfg.Logger,
	}
	if c.display == nil {
		c.display = display.Noop{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// HandleTimerStatus starts or stops the countdown. Both reset the clock to the
// configured default and blank the display until the next tick.
func (c *Controller) HandleTimerStatus(ctx context.Context, action string) error {
	a, err := ParseAction(action)
	if err != nil {
		c.reject(ctx, err)
		return err
	}

	switch a {
	case ActionStart:
		c.state.Start(ctx)
	case ActionStop:
		c.state.Stop(ctx)
	}

	snap := c.state.Snapshot()
	c.logger.Info("timer "+a.String(),
		"run_id", snap.RunID,
		"request_id", eventlog.OriginFrom(ctx).RequestID,
		"seconds", snap.DefaultSeconds)

	if err := c.display.Clear(); err != nil {
		c.logger.Warn("display error", "op", "clear", "error", err)
	}
	return nil
}

// HandleTimerInterval sets the default countdown duration from a decimal
// number of seconds. A running countdown is not affected.
func (c *Controller) HandleTimerInterval(ctx context.Context, raw string) error {
	seconds, err := ParseSeconds(raw)
	if err != nil {
		c.reject(ctx, err)
		return err
	}

	if err := c.state.ConfigureDefault(ctx, seconds); err != nil {
		verr := tooHigh(raw)
		if !errors.Is(err, digits.ErrConfiguration) {
			verr = &ValidationError{Field: "seconds", Value: raw, Message: MsgInvalidArgument, Err: err}
		}
		c.reject(ctx, verr)
		return verr
	}

	c.logger.Info("timer interval set",
		"seconds", seconds,
		"digits", digits.MustFromSeconds(seconds).Format(),
		"request_id", eventlog.OriginFrom(ctx).RequestID)
	return nil
}

// Status returns a snapshot of the timer.
func (c *Controller) Status() timer.Snapshot {
	return c.state.Snapshot()
}

func (c *Controller) reject(ctx context.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		c.logger.Info("request rejected",
			"reason", verr.Detail(),
			"request_id", eventlog.OriginFrom(ctx).RequestID)
	}
}
