package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/segtimer/segtimer-go/pkg/eventlog"
)

// Record is the flat export form of an event.
type Record struct {
	Timestamp  time.Time `json:"timestamp"`
	RunID      string    `json:"run_id,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Source     string    `json:"source"`
	Category   string    `json:"category"`
	OldState   string    `json:"old_state,omitempty"`
	NewState   string    `json:"new_state,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Seconds    *int      `json:"seconds,omitempty"`
	OldSeconds *int      `json:"old_seconds,omitempty"`
	DisplayOp  string    `json:"display_op,omitempty"`
	Digits     string    `json:"digits,omitempty"`
	Error      string    `json:"error,omitempty"`
	ErrorCtx   string    `json:"error_context,omitempty"`
}

// NewRecord flattens an event.
func NewRecord(e eventlog.Event) Record {
	r := Record{
		Timestamp: e.Timestamp,
		RunID:     e.RunID,
		RequestID: e.RequestID,
		Source:    e.Source.String(),
		Category:  e.Category.String(),
	}
	switch {
	case e.StateChange != nil:
		r.OldState = e.StateChange.OldState
		r.NewState = e.StateChange.NewState
		r.Reason = e.StateChange.Reason
		r.Seconds = &e.StateChange.Seconds
	case e.Config != nil:
		r.OldSeconds = &e.Config.OldSeconds
		r.Seconds = &e.Config.Seconds
	case e.Display != nil:
		r.DisplayOp = e.Display.Op
		r.Digits = e.Display.Digits
	case e.Error != nil:
		r.Error = e.Error.Message
		r.ErrorCtx = e.Error.Context
	}
	return r
}

// RunExport writes every event in the given format (jsonl or csv).
func RunExport(path, format string, w io.Writer) error {
	reader, err := eventlog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *eventlog.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	return each(reader, func(e eventlog.Event) error {
		if err := encoder.Encode(NewRecord(e)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

func exportCSV(reader *eventlog.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "run_id", "request_id", "source", "category", "old_state", "new_state", "reason", "seconds", "display_op", "digits", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return each(reader, func(e eventlog.Event) error {
		r := NewRecord(e)
		seconds := ""
		if r.Seconds != nil {
			seconds = strconv.Itoa(*r.Seconds)
		}
		row := []string{
			r.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			r.RunID,
			r.RequestID,
			r.Source,
			r.Category,
			r.OldState,
			r.NewState,
			r.Reason,
			seconds,
			r.DisplayOp,
			r.Digits,
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
}

// each calls fn for every event until EOF.
func each(reader *eventlog.Reader, fn func(eventlog.Event) error) error {
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := fn(event); err != nil {
			return err
		}
	}
}
