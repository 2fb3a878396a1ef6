package history

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segtimer/segtimer-go/pkg/eventlog"
	"github.com/segtimer/segtimer-go/pkg/timer"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// newTimer wires a timer to the store with a stepping clock and sequential
// run ids.
func newTimer(t *testing.T, store *Store, seconds int) *timer.State {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var calls, ids int
	state, err := timer.NewWithConfig(timer.Config{
		DefaultSeconds: seconds,
		EventLogger:    store,
		Now: func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * time.Second)
		},
		NewRunID: func() string {
			ids++
			return fmt.Sprintf("run-%d", ids)
		},
	})
	require.NoError(t, err)
	return state
}

func TestStoreStartAndGetRun(t *testing.T) {
	store := newStore(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.StartRun(Run{ID: "a", Seconds: 90, Source: "CONTROL", StartedAt: started}))

	got, err := store.GetRun("a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 90, got.Seconds)
	assert.Equal(t, "CONTROL", got.Source)
	assert.True(t, got.StartedAt.Equal(started))
	assert.Nil(t, got.EndedAt)
	assert.Equal(t, OutcomeNone, got.Outcome)
}

func TestStoreGetRunNotFound(t *testing.T) {
	store := newStore(t)

	got, err := store.GetRun("missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreStartRunRequiresID(t *testing.T) {
	store := newStore(t)
	assert.Error(t, store.StartRun(Run{Seconds: 10, StartedAt: time.Now()}))
}

func TestStoreEndRunOnlyOnce(t *testing.T) {
	store := newStore(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.StartRun(Run{ID: "a", Seconds: 10, StartedAt: started}))

	require.NoError(t, store.EndRun("a", started.Add(10*time.Second), OutcomeExpired))
	require.NoError(t, store.EndRun("a", started.Add(20*time.Second), OutcomeStopped))

	got, err := store.GetRun("a")
	require.NoError(t, err)
	assert.Equal(t, OutcomeExpired, got.Outcome)
	assert.Equal(t, "10s", got.Duration)
}

func TestStoreTracksTimerStop(t *testing.T) {
	store := newStore(t)
	state := newTimer(t, store, 90)
	ctx := context.Background()

	state.Start(ctx)
	state.Stop(ctx)

	got, err := store.GetRun("run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, OutcomeStopped, got.Outcome)
	assert.Equal(t, 90, got.Seconds)
	require.NotNil(t, got.EndedAt)
}

func TestStoreTracksRestart(t *testing.T) {
	store := newStore(t)
	state := newTimer(t, store, 90)
	ctx := eventlog.WithOrigin(context.Background(), eventlog.Origin{Source: eventlog.SourceConsole})

	state.Start(ctx)
	state.Start(ctx)

	runs, err := store.ListRuns(10, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, OutcomeNone, runs[0].Outcome)
	assert.Equal(t, "CONSOLE", runs[0].Source)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, OutcomeRestarted, runs[1].Outcome)
}

func TestStoreTracksExpiry(t *testing.T) {
	store := newStore(t)
	state := newTimer(t, store, 2)
	ctx := context.Background()

	state.Start(ctx)
	state.TickIfRunning(ctx)
	res := state.TickIfRunning(ctx)
	require.True(t, res.Expired)
	state.FinishExpiry(ctx, res.Epoch)

	got, err := store.GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, OutcomeExpired, got.Outcome)

	st, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 1, Expired: 1}, st)
}

func TestStoreIgnoresOtherEvents(t *testing.T) {
	store := newStore(t)

	store.Log(eventlog.Event{Category: eventlog.CategoryConfig, Config: &eventlog.ConfigEvent{Seconds: 5}})
	store.Log(eventlog.Event{Category: eventlog.CategoryState})

	st, err := store.Stats()
	require.NoError(t, err)
	assert.Zero(t, st.Total)
}

func TestStoreListRunsPaging(t *testing.T) {
	store := newStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.StartRun(Run{
			ID:        fmt.Sprintf("r%d", i),
			Seconds:   60,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	runs, err := store.ListRuns(2, 1)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r3", runs[0].ID)
	assert.Equal(t, "r2", runs[1].ID)

	all, err := store.ListRuns(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestStoreStats(t *testing.T) {
	store := newStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, outcome := range []Outcome{OutcomeExpired, OutcomeExpired, OutcomeStopped, OutcomeRestarted, OutcomeNone} {
		id := fmt.Sprintf("r%d", i)
		require.NoError(t, store.StartRun(Run{ID: id, Seconds: 30, StartedAt: now}))
		if outcome != OutcomeNone {
			require.NoError(t, store.EndRun(id, now.Add(time.Second), outcome))
		}
	}

	st, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 5, Active: 1, Expired: 2, Stopped: 1, Restarted: 1}, st)
}
