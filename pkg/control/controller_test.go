package control

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segtimer/segtimer-go/pkg/digits"
	"github.com/segtimer/segtimer-go/pkg/display/mocks"
	"github.com/segtimer/segtimer-go/pkg/timer"
)

func newController(t *testing.T) (*Controller, *timer.State, *mocks.MockDisplay) {
	t.Helper()
	state := timer.New()
	d := mocks.NewMockDisplay(t)
	c := New(Config{
		State:   state,
		Display: d,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return c, state, d
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"start", ActionStart, false},
		{"START", ActionStart, false},
		{"Stop", ActionStop, false},
		{"", 0, true},
		{"pause", 0, true},
		{" start", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, MsgInvalidArgument, verr.Error())
				assert.ErrorIs(t, err, ErrInvalidAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantMsg string
	}{
		{"0", 0, ""},
		{"90", 90, ""},
		{"5999", 5999, ""},
		{"6000", 0, MsgSecondsTooHigh},
		{"99999999999999999999999", 0, MsgSecondsTooHigh},
		{"", 0, MsgInvalidArgument},
		{"-5", 0, MsgInvalidArgument},
		{"1.5", 0, MsgInvalidArgument},
		{"abc", 0, MsgInvalidArgument},
		{"NaN", 0, MsgInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeconds(tt.in)
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTooHighWrapsConfigurationError(t *testing.T) {
	_, err := ParseSeconds("6000")
	assert.ErrorIs(t, err, digits.ErrConfiguration)
}

func TestHandleTimerStatusStart(t *testing.T) {
	c, state, d := newController(t)
	d.EXPECT().Clear().Return(nil).Once()

	require.NoError(t, c.HandleTimerStatus(context.Background(), "Start"))

	snap := c.Status()
	assert.True(t, snap.Running)
	assert.Equal(t, timer.PhaseRunning, state.Phase())
	assert.Equal(t, "0200", snap.Clock.String())
}

func TestHandleTimerStatusStartThenStop(t *testing.T) {
	c, _, d := newController(t)
	d.EXPECT().Clear().Return(nil).Twice()
	ctx := context.Background()

	require.NoError(t, c.HandleTimerStatus(ctx, "start"))
	require.NoError(t, c.HandleTimerStatus(ctx, "stop"))

	snap := c.Status()
	assert.False(t, snap.Running)
	assert.Equal(t, "0200", snap.Clock.String())
}

func TestHandleTimerStatusInvalidLeavesState(t *testing.T) {
	c, _, _ := newController(t)
	before := c.Status()

	err := c.HandleTimerStatus(context.Background(), "bogus")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "a", verr.Field)
	assert.Equal(t, before, c.Status())
}

func TestHandleTimerStatusDisplayErrorIgnored(t *testing.T) {
	c, _, d := newController(t)
	d.EXPECT().Clear().Return(errors.New("nack")).Once()

	require.NoError(t, c.HandleTimerStatus(context.Background(), "start"))
	assert.True(t, c.Status().Running)
}

func TestHandleTimerInterval(t *testing.T) {
	c, _, _ := newController(t)

	require.NoError(t, c.HandleTimerInterval(context.Background(), "90"))

	snap := c.Status()
	assert.Equal(t, 90, snap.DefaultSeconds)
	assert.Equal(t, "0130", snap.Clock.String())
}

func TestHandleTimerIntervalKeepsRunningCountdown(t *testing.T) {
	c, state, d := newController(t)
	d.EXPECT().Clear().Return(nil).Once()
	ctx := context.Background()

	require.NoError(t, c.HandleTimerStatus(ctx, "start"))
	state.TickIfRunning(ctx)
	require.NoError(t, c.HandleTimerInterval(ctx, "30"))

	snap := c.Status()
	assert.True(t, snap.Running)
	assert.Equal(t, "0159", snap.Clock.String())
	assert.Equal(t, 30, snap.DefaultSeconds)
}

func TestHandleTimerIntervalRejects(t *testing.T) {
	c, _, _ := newController(t)
	ctx := context.Background()

	err := c.HandleTimerInterval(ctx, "6000")
	require.Error(t, err)
	assert.Equal(t, MsgSecondsTooHigh, err.Error())
	assert.ErrorIs(t, err, digits.ErrConfiguration)

	err = c.HandleTimerInterval(ctx, "ten")
	require.Error(t, err)
	assert.Equal(t, MsgInvalidArgument, err.Error())
	assert.ErrorIs(t, err, ErrInvalidSeconds)

	assert.Equal(t, timer.DefaultSeconds, c.Status().DefaultSeconds)
}

func TestValidationErrorDetail(t *testing.T) {
	err := &ValidationError{Field: "seconds", Value: "x", Message: MsgInvalidArgument, Err: ErrInvalidSeconds}
	assert.Equal(t, `seconds="x": invalid seconds`, err.Detail())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "start", ActionStart.String())
	assert.Equal(t, "stop", ActionStop.String())
	assert.Equal(t, "unknown", Action(9).String())
}
