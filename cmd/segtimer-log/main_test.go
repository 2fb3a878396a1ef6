package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segtimer/segtimer-go/pkg/eventlog"
)

func writeLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.tlog")
	logger, err := eventlog.NewFileLogger(path)
	require.NoError(t, err)
	logger.Log(eventlog.Event{
		Timestamp:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		RunID:       "run-1",
		Category:    eventlog.CategoryState,
		StateChange: &eventlog.StateChangeEvent{OldState: "STOPPED", NewState: "RUNNING", Reason: "start", Seconds: 120},
	})
	require.NoError(t, logger.Close())
	return path
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage:")

	stderr.Reset()
	assert.Equal(t, 1, run([]string{"frobnicate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Unknown command: frobnicate")

	assert.Equal(t, 0, run([]string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "segtimer-log <command>")
}

func TestRunView(t *testing.T) {
	path := writeLog(t)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"view", "-category", "state", path}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "STOPPED -> RUNNING")
}

func TestRunViewBadFlag(t *testing.T) {
	path := writeLog(t)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"view", "-source", "radio", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unknown source")
}

func TestRunMissingPath(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"stats"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "log file path required")
}

func TestRunFilterRequiresOutput(t *testing.T) {
	path := writeLog(t)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"filter", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "output file (-o) required")
}

func TestRunFilterAndExport(t *testing.T) {
	path := writeLog(t)
	out := filepath.Join(t.TempDir(), "run.tlog")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"filter", "-run-id", "run-1", "-o", out, path}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "Filtered 1 events")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"export", "-format", "jsonl", out}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), `"new_state":"RUNNING"`)
}
