package render

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/segtimer/segtimer-go/pkg/display"
	"github.com/segtimer/segtimer-go/pkg/eventlog"
	"github.com/segtimer/segtimer-go/pkg/timer"
)

// Loop defaults.
const (
	DefaultPeriod     = time.Second
	DefaultFlashCount = 5
	DefaultFlashPhase = 500 * time.Millisecond
)

// Config holds render loop configuration.
type Config struct {
	// Period between ticks.
	Period time.Duration

	// FlashCount is the number of on/off cycles in the end-of-time animation.
	FlashCount int

	// FlashPhase is how long each on or off phase is held.
	FlashPhase time.Duration

	// SkipTickOnDisplayError holds the countdown while rendering fails.
	// By default a failed render is logged and the tick still decrements.
	SkipTickOnDisplayError bool

	// TraceWrites emits a display event with the digits of every render.
	TraceWrites bool

	Clock       Clock
	Logger      *slog.Logger
	EventLogger eventlog.Logger
}

// Stats counts loop activity.
type Stats struct {
	Ticks         uint64 `json:"ticks"`
	Renders       uint64 `json:"renders"`
	Animations    uint64 `json:"animations"`
	DisplayErrors uint64 `json:"display_errors"`
}

// Loop renders a timer.State to a display.Display.
type Loop struct {
	state   *timer.State
	display display.Display
	config  Config

	logger *slog.Logger
	events eventlog.Logger

	ticks         atomic.Uint64
	renders       atomic.Uint64
	animations    atomic.Uint64
	displayErrors atomic.Uint64
}

// New creates a render loop. Zero config fields take the defaults.
func New(state *timer.State, d display.Display, cfg Config) *Loop {
	if cfg.Period <= 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.FlashCount <= 0 {
		cfg.FlashCount = DefaultFlashCount
	}
	if cfg.FlashPhase <= 0 {
		cfg.FlashPhase = DefaultFlashPhase
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}

	l := &Loop{
		state:   state,
		display: d,
		config:  cfg,
		logger:  cfg.Logger,
		events:  cfg.EventLogger,
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.events == nil {
		l.events = eventlog.NoopLogger{}
	}
	return l
}

// Run ticks until ctx is cancelled. It always returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	ctx = eventlog.WithOrigin(ctx, eventlog.Origin{Source: eventlog.SourceLoop})

	ticker := l.config.Clock.NewTicker(l.config.Period)
	defer ticker.Stop()

	l.logger.Info("render loop started", "period", l.config.Period)
	defer l.logger.Info("render loop stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			l.Step(ctx)
		}
	}
}

// Step runs a single tick, including the end-of-time animation if the tick
// reaches zero.
func (l *Loop) Step(ctx context.Context) {
	l.ticks.Add(1)

	snap := l.state.Snapshot()
	if !snap.Running {
		return
	}

	text := snap.Clock.String()
	if err := l.render(text); err != nil {
		l.displayError(ctx, snap.RunID, "render", err)
		if l.config.SkipTickOnDisplayError {
			return
		}
	} else {
		l.renders.Add(1)
		if l.config.TraceWrites {
			l.logDisplay(ctx, snap.RunID, "write", text)
		}
	}

	res := l.state.Tick(ctx, snap)
	if !res.Ticked {
		l.logger.Debug("tick skipped, timer changed since render", "run_id", snap.RunID)
		return
	}
	l.logger.Debug("tick", "run_id", res.RunID, "shown", text, "remaining", res.Clock.Format())

	if res.Expired {
		l.animate(ctx, res)
	}
}

// Stats returns loop counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Ticks:         l.ticks.Load(),
		Renders:       l.renders.Load(),
		Animations:    l.animations.Load(),
		DisplayErrors: l.displayErrors.Load(),
	}
}

func (l *Loop) render(text string) error {
	if err := l.display.WriteDigits(text); err != nil {
		return err
	}
	return l.display.SetColon(true)
}

// errAnimationCancelled reports that a control request ended the animation.
var errAnimationCancelled = errors.New("animation cancelled")

// animate plays the end-of-time flashes, then blanks the display and stops
// the timer.
func (l *Loop) animate(ctx context.Context, res timer.TickResult) {
	l.animations.Add(1)
	l.logger.Info("countdown expired", "run_id", res.RunID)
	l.logDisplay(ctx, res.RunID, "animation", "")

	err := l.flash(ctx, res.ExpiryDone)
	switch {
	case errors.Is(err, errAnimationCancelled):
		// A flash can land after the control path's Clear, so blank again.
		// The next render comes from this goroutine and cannot be overwritten.
		l.logger.Info("end-of-time animation cancelled", "run_id", res.RunID)
		l.logDisplay(ctx, res.RunID, "animation_cancelled", "")
		if err := l.display.Clear(); err != nil {
			l.displayError(ctx, res.RunID, "clear", err)
		}
		return
	case err != nil && ctx.Err() == nil:
		l.displayError(ctx, res.RunID, "animation", err)
	}

	if err := l.display.Clear(); err != nil {
		l.displayError(ctx, res.RunID, "clear", err)
	}
	l.state.FinishExpiry(ctx, res.Epoch)
}

func (l *Loop) flash(ctx context.Context, done <-chan struct{}) error {
	var firstErr error
	for i := 0; i < l.config.FlashCount; i++ {
		for _, on := range []bool{true, false} {
			select {
			case <-done:
				return errAnimationCancelled
			default:
			}
			if err := l.display.Fill(on); err != nil && firstErr == nil {
				firstErr = err
			}
			select {
			case <-l.config.Clock.After(l.config.FlashPhase):
			case <-done:
				return errAnimationCancelled
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return firstErr
}

func (l *Loop) displayError(ctx context.Context, runID, op string, err error) {
	l.displayErrors.Add(1)
	l.logger.Warn("display error", "op", op, "run_id", runID, "error", err)

	o := eventlog.OriginFrom(ctx)
	l.events.Log(eventlog.Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Source:    o.Source,
		Category:  eventlog.CategoryError,
		Error:     &eventlog.ErrorEventData{Message: err.Error(), Context: op},
	})
}

func (l *Loop) logDisplay(ctx context.Context, runID, op, text string) {
	o := eventlog.OriginFrom(ctx)
	l.events.Log(eventlog.Event{
		Timestamp: time.Now(),
		RunID:     runID,
		Source:    o.Source,
		Category:  eventlog.CategoryDisplay,
		Display:   &eventlog.DisplayEvent{Op: op, Digits: text},
	})
}
