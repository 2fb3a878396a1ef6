package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileLogger appends events to a .tlog file. Each event is encoded before it
// is written, so a failed encode never leaves a partial record behind.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	closed  bool
	written uint64
	dropped uint64
	onError func(error)
}

// NewFileLogger opens path for appending, creating it and its directory.
func NewFileLogger(path string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: f}, nil
}

// OnError sets a callback for events that could not be written. The timer
// never sees these errors.
func (l *FileLogger) OnError(fn func(error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onError = fn
}

// Log appends the event. Events logged after Close are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		l.dropped++
		return
	}

	data, err := MarshalEvent(event)
	if err == nil {
		_, err = l.file.Write(data)
	}
	if err != nil {
		l.dropped++
		if l.onError != nil {
			l.onError(fmt.Errorf("event log %s: %w", l.file.Name(), err))
		}
		return
	}
	l.written++
}

// Counts returns how many events were written and dropped.
func (l *FileLogger) Counts() (written, dropped uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written, l.dropped
}

// Close closes the file. Closing twice is a no-op.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
