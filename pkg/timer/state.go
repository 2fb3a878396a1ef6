package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segtimer/segtimer-go/pkg/digits"
	"github.com/segtimer/segtimer-go/pkg/eventlog"
)

// DefaultSeconds is the built-in countdown duration (02:00).
const DefaultSeconds = 120

// Transition reasons recorded in state events.
const (
	ReasonStart     = "start"
	ReasonRestart   = "restart"
	ReasonStop      = "stop"
	ReasonExpired   = "expired"
	ReasonAnimation = "animation_done"
)

// Phase is the lifecycle phase of the countdown.
type Phase uint8

const (
	// PhaseStopped means no countdown is active.
	PhaseStopped Phase = iota

	// PhaseRunning means the countdown is decrementing.
	PhaseRunning

	// PhaseExpiring means the countdown reached zero and the end-of-time
	// animation is playing.
	PhaseExpiring
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "STOPPED"
	case PhaseRunning:
		return "RUNNING"
	case PhaseExpiring:
		return "EXPIRING"
	default:
		return "UNKNOWN"
	}
}

// Snapshot is a value copy of the state taken for rendering.
type Snapshot struct {
	Clock          digits.Clock
	Running        bool
	Phase          Phase
	DefaultSeconds int
	Epoch          uint64
	RunID          string
}

// TickResult reports what a tick did.
type TickResult struct {
	// Ticked is false when the timer was not running or the snapshot was stale.
	Ticked bool

	// Expired is true when this tick reached 00:00.
	Expired bool

	// Clock is the value after the decrement.
	Clock digits.Clock

	// Epoch identifies the Expiring phase for FinishExpiry.
	Epoch uint64

	// RunID is the run that ticked.
	RunID string

	// ExpiryDone is closed when the Expiring phase ends. Only set when
	// Expired is true.
	ExpiryDone <-chan struct{}
}

// Config holds timer configuration.
type Config struct {
	// DefaultSeconds is the initial countdown duration. Zero means
	// the built-in DefaultSeconds; use NewWithConfig then
	// ConfigureDefault(0) for a zero-length countdown.
	DefaultSeconds int

	// EventLogger receives state and config events. Nil disables.
	EventLogger eventlog.Logger

	// Now returns the event timestamp. Defaults to time.Now.
	Now func() time.Time

	// NewRunID generates run identifiers. Defaults to random UUIDs.
	NewRunID func() string
}

// State is the countdown state shared by the control path and the render loop.
type State struct {
	mu sync.Mutex

	current        digits.Clock
	defaultSeconds int
	running        bool
	phase          Phase
	epoch          uint64
	runID          string

	// expiring is open while phase is PhaseExpiring.
	expiring chan struct{}

	events   eventlog.Logger
	now      func() time.Time
	newRunID func() string

	// pending holds events produced under mu. They are handed out in
	// batches numbered by nextBatch and logged after unlock in that order.
	pending   []eventlog.Event
	nextBatch uint64

	emitMu   sync.Mutex
	emitCond *sync.Cond
	emitted  uint64

	onStateChange func(oldPhase, newPhase Phase)
}

// New creates a stopped timer with the built-in default duration.
func New() *State {
	s, _ := NewWithConfig(Config{})
	return s
}

// NewWithConfig creates a stopped timer with custom configuration.
func NewWithConfig(cfg Config) (*State, error) {
	seconds := cfg.DefaultSeconds
	if seconds == 0 {
		seconds = DefaultSeconds
	}
	clock, err := digits.FromSeconds(seconds)
	if err != nil {
		return nil, fmt.Errorf("default duration: %w", err)
	}

	s := &State{
		current:        clock,
		defaultSeconds: seconds,
		phase:          PhaseStopped,
		events:         cfg.EventLogger,
		now:            cfg.Now,
		newRunID:       cfg.NewRunID,
	}
	if s.events == nil {
		s.events = eventlog.NoopLogger{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newRunID == nil {
		s.newRunID = func() string { return uuid.New().String() }
	}
	s.emitCond = sync.NewCond(&s.emitMu)
	return s, nil
}

// transition is a phase change collected under the lock and reported to the
// callback after it is released.
type transition struct {
	old, new Phase
}

// ConfigureDefault sets the duration used by the next start, stop or expiry.
// A running countdown keeps its current value; a stopped clock is reset to
// the new default.
func (s *State) ConfigureDefault(ctx context.Context, seconds int) error {
	if err := digits.ValidateSeconds(seconds); err != nil {
		return err
	}

	o := eventlog.OriginFrom(ctx)

	s.mu.Lock()
	old := s.defaultSeconds
	s.defaultSeconds = seconds
	if !s.running {
		s.current = s.resetClockLocked()
	}
	s.pending = append(s.pending, eventlog.Event{
		Timestamp: s.now(),
		RunID:     s.runID,
		RequestID: o.RequestID,
		Source:    o.Source,
		Category:  eventlog.CategoryConfig,
		Config:    &eventlog.ConfigEvent{OldSeconds: old, Seconds: seconds},
	})
	b := s.takeBatchLocked()
	s.mu.Unlock()

	s.emit(b)
	return nil
}

// DefaultSeconds returns the configured duration.
func (s *State) DefaultSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultSeconds
}

// Start resets the clock to the default and starts counting down.
// Starting a running timer restarts it.
func (s *State) Start(ctx context.Context) {
	s.mu.Lock()
	reason := ReasonStart
	if s.phase == PhaseRunning {
		reason = ReasonRestart
	}
	s.runID = s.newRunID()
	tr := s.setPhaseLocked(ctx, PhaseRunning, reason)
	b := s.takeBatchLocked()
	s.mu.Unlock()

	s.emit(b)
	s.notify(tr)
}

// Stop resets the clock to the default and stops counting down.
// Stopping a stopped timer only resets the clock.
func (s *State) Stop(ctx context.Context) {
	s.mu.Lock()
	var tr *transition
	if s.phase == PhaseStopped {
		s.current = s.resetClockLocked()
		s.epoch++
	} else {
		tr = s.setPhaseLocked(ctx, PhaseStopped, ReasonStop)
	}
	b := s.takeBatchLocked()
	s.mu.Unlock()

	s.emit(b)
	s.notify(tr)
}

// TickIfRunning decrements a running countdown by one second.
func (s *State) TickIfRunning(ctx context.Context) TickResult {
	s.mu.Lock()
	res, tr := s.tickLocked(ctx)
	b := s.takeBatchLocked()
	s.mu.Unlock()

	s.emit(b)
	s.notify(tr)
	return res
}

// Tick is TickIfRunning for the snapshot the caller rendered. It does nothing
// if a start or stop happened since the snapshot was taken.
func (s *State) Tick(ctx context.Context, snap Snapshot) TickResult {
	s.mu.Lock()
	if snap.Epoch != s.epoch {
		s.mu.Unlock()
		return TickResult{}
	}
	res, tr := s.tickLocked(ctx)
	b := s.takeBatchLocked()
	s.mu.Unlock()

	s.emit(b)
	s.notify(tr)
	return res
}

// FinishExpiry ends the Expiring phase entered at epoch. It is a no-op if a
// start or stop already ended it.
func (s *State) FinishExpiry(ctx context.Context, epoch uint64) {
	s.mu.Lock()
	if s.phase != PhaseExpiring || s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	tr := s.setPhaseLocked(ctx, PhaseStopped, ReasonAnimation)
	b := s.takeBatchLocked()
	s.mu.Unlock()

	s.emit(b)
	s.notify(tr)
}

// Snapshot returns a copy of the state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Clock:          s.current,
		Running:        s.running,
		Phase:          s.phase,
		DefaultSeconds: s.defaultSeconds,
		Epoch:          s.epoch,
		RunID:          s.runID,
	}
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// OnStateChange sets a callback for phase changes. The callback runs outside
// the state lock and may call back into the State.
func (s *State) OnStateChange(fn func(oldPhase, newPhase Phase)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChange = fn
}

func (s *State) tickLocked(ctx context.Context) (TickResult, *transition) {
	if !s.running {
		return TickResult{}, nil
	}

	next, zero := s.current.Decrement()
	res := TickResult{Ticked: true, Clock: next, RunID: s.runID}
	if !zero {
		s.current = next
		return res, nil
	}

	tr := s.setPhaseLocked(ctx, PhaseExpiring, ReasonExpired)
	res.Expired = true
	res.Epoch = s.epoch
	res.ExpiryDone = s.expiring
	return res, tr
}

// setPhaseLocked moves to phase, resetting the clock and the epoch, and
// queues the state event.
func (s *State) setPhaseLocked(ctx context.Context, phase Phase, reason string) *transition {
	tr := &transition{old: s.phase, new: phase}

	o := eventlog.OriginFrom(ctx)
	s.pending = append(s.pending, eventlog.Event{
		Timestamp: s.now(),
		RunID:     s.runID,
		RequestID: o.RequestID,
		Source:    o.Source,
		Category:  eventlog.CategoryState,
		StateChange: &eventlog.StateChangeEvent{
			OldState: s.phase.String(),
			NewState: phase.String(),
			Reason:   reason,
			Seconds:  s.defaultSeconds,
		},
	})

	if s.phase == PhaseExpiring && s.expiring != nil {
		close(s.expiring)
		s.expiring = nil
	}
	if phase == PhaseExpiring {
		s.expiring = make(chan struct{})
	}

	s.phase = phase
	s.running = phase == PhaseRunning
	s.current = s.resetClockLocked()
	s.epoch++
	return tr
}

func (s *State) resetClockLocked() digits.Clock {
	// defaultSeconds is validated on every write.
	return digits.MustFromSeconds(s.defaultSeconds)
}

// batch is a run of events with its place in the emit order.
type batch struct {
	seq    uint64
	events []eventlog.Event
}

// takeBatchLocked hands out the pending events. An empty batch takes no
// sequence number.
func (s *State) takeBatchLocked() batch {
	if len(s.pending) == 0 {
		return batch{}
	}
	b := batch{seq: s.nextBatch, events: s.pending}
	s.nextBatch++
	s.pending = nil
	return b
}

// emit logs a batch outside mu once every earlier batch has been logged, so
// sinks see events in transition order while a slow sink holds up only the
// callers that produced events, never readers of the state.
func (s *State) emit(b batch) {
	if len(b.events) == 0 {
		return
	}

	s.emitMu.Lock()
	for s.emitted != b.seq {
		s.emitCond.Wait()
	}
	s.emitMu.Unlock()

	for _, e := range b.events {
		s.events.Log(e)
	}

	s.emitMu.Lock()
	s.emitted++
	s.emitCond.Broadcast()
	s.emitMu.Unlock()
}

// notify runs the state change callback outside the lock.
func (s *State) notify(tr *transition) {
	if tr == nil {
		return
	}

	s.mu.Lock()
	fn := s.onStateChange
	s.mu.Unlock()

	if fn != nil {
		fn(tr.old, tr.new)
	}
}
