package eventlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// ErrTruncated is returned when the file ends inside a record, which happens
// when the service dies mid-write. Every event before it was read normally.
var ErrTruncated = errors.New("event log truncated")

// Filter selects events. Zero fields match everything.
type Filter struct {
	// RunID matches run IDs starting with this value, so the short IDs
	// printed by segtimer-log can be used directly.
	RunID string

	Source   *Source
	Category *Category

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time
}

// Matches reports whether event passes every set criterion.
func (f *Filter) Matches(event Event) bool {
	switch {
	case f.RunID != "" && !strings.HasPrefix(event.RunID, f.RunID):
		return false
	case f.Source != nil && event.Source != *f.Source:
		return false
	case f.Category != nil && event.Category != *f.Category:
		return false
	case f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart):
		return false
	case f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd):
		return false
	}
	return true
}

// Reader streams events from a .tlog file.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
	records int
}

// NewReader opens path for reading every event.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader opens path for reading events that match filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{file: f, decoder: newDecoder(f), filter: filter}, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		err := r.decoder.Decode(&event)
		switch {
		case errors.Is(err, io.EOF):
			return Event{}, io.EOF
		case errors.Is(err, io.ErrUnexpectedEOF):
			return Event{}, fmt.Errorf("%w after %d records", ErrTruncated, r.records)
		case err != nil:
			return Event{}, fmt.Errorf("record %d: %w", r.records+1, err)
		}
		r.records++

		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// Records returns how many records have been decoded, matching or not.
func (r *Reader) Records() int {
	return r.records
}

func (r *Reader) Close() error {
	return r.file.Close()
}
