package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/segtimer/segtimer-go/pkg/digits"
	"github.com/segtimer/segtimer-go/pkg/eventlog"
)

// RunView prints matching events, one per line.
func RunView(path string, filter eventlog.Filter, w io.Writer) error {
	reader, err := eventlog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		fmt.Fprintln(w, FormatEvent(event))
	}
}

// FormatEvent renders one event as a log line:
//
//	15:04:05.000 CONTROL STATE   [a1b2c3d4] STOPPED -> RUNNING (start, 01:30) req=...
func FormatEvent(e eventlog.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-7s %-7s", e.Timestamp.Format("15:04:05.000"), e.Source, e.Category)
	if e.RunID != "" {
		fmt.Fprintf(&b, " [%s]", shortID(e.RunID))
	}

	switch {
	case e.StateChange != nil:
		sc := e.StateChange
		fmt.Fprintf(&b, " %s -> %s", sc.OldState, sc.NewState)
		if sc.Reason != "" {
			fmt.Fprintf(&b, " (%s, %s)", sc.Reason, formatSeconds(sc.Seconds))
		}
	case e.Config != nil:
		fmt.Fprintf(&b, " interval %s -> %s", formatSeconds(e.Config.OldSeconds), formatSeconds(e.Config.Seconds))
	case e.Display != nil:
		fmt.Fprintf(&b, " %s", e.Display.Op)
		if d := e.Display.Digits; d != "" {
			if c, err := digits.Parse(d); err == nil {
				fmt.Fprintf(&b, " %s", c.Format())
			} else {
				fmt.Fprintf(&b, " %q", d)
			}
		}
	case e.Error != nil:
		fmt.Fprintf(&b, " error: %s", e.Error.Message)
		if e.Error.Context != "" {
			fmt.Fprintf(&b, " (%s)", e.Error.Context)
		}
	}

	if e.RequestID != "" {
		fmt.Fprintf(&b, " req=%s", e.RequestID)
	}
	return b.String()
}

func formatSeconds(s int) string {
	c, err := digits.FromSeconds(s)
	if err != nil {
		return fmt.Sprintf("%ds", s)
	}
	return c.Format()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
