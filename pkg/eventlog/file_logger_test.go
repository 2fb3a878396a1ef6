package eventlog

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		RunID:     "run-123",
		Source:    SourceControl,
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			OldState: "STOPPED",
			NewState: "RUNNING",
			Reason:   "start",
			Seconds:  90,
		},
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := UnmarshalEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.RunID != event.RunID {
		t.Errorf("RunID: got %q, want %q", decoded.RunID, event.RunID)
	}
	if decoded.StateChange == nil {
		t.Fatal("StateChange is nil")
	}
	if decoded.StateChange.NewState != "RUNNING" || decoded.StateChange.Seconds != 90 {
		t.Errorf("StateChange: got %+v", decoded.StateChange)
	}
	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, event.Timestamp)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.tlog")

	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{
			Timestamp: time.Now(),
			Source:    SourceControl,
			Category:  CategoryConfig,
			Config:    &ConfigEvent{OldSeconds: i, Seconds: i + 1},
		})
		logger.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		count++
	}
	if count != 2 {
		t.Errorf("got %d events, want 2", count)
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Log(Event{
					Timestamp: time.Now(),
					Source:    SourceLoop,
					Category:  CategoryDisplay,
					Display:   &DisplayEvent{Op: "write", Digits: "0130"},
				})
			}
		}(i)
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err != nil {
			if err != io.EOF {
				t.Fatalf("Next failed: %v", err)
			}
			break
		}
		count++
	}
	if count != 100 {
		t.Errorf("got %d events, want 100", count)
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "events.tlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	// Must not panic after close.
	logger.Log(Event{Timestamp: time.Now()})
}

func TestFileLoggerCounts(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "events.tlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(Event{Timestamp: time.Now(), Category: CategoryConfig, Config: &ConfigEvent{Seconds: 30}})
	logger.Close()
	logger.Log(Event{Timestamp: time.Now()})

	written, dropped := logger.Counts()
	if written != 1 || dropped != 1 {
		t.Errorf("counts: got %d written, %d dropped; want 1, 1", written, dropped)
	}
}

func TestFileLoggerReportsWriteErrors(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "events.tlog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	var reported []error
	logger.OnError(func(err error) { reported = append(reported, err) })

	// Pull the file out from under the logger.
	logger.file.Close()
	logger.Log(Event{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{NewState: "RUNNING"}})

	if len(reported) != 1 {
		t.Fatalf("got %d reported errors, want 1", len(reported))
	}
	if !errors.Is(reported[0], os.ErrClosed) {
		t.Errorf("error: got %v, want os.ErrClosed", reported[0])
	}
	if _, dropped := logger.Counts(); dropped != 1 {
		t.Errorf("dropped: got %d, want 1", dropped)
	}
}
