package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/segtimer/segtimer-go/pkg/digits"
	"github.com/segtimer/segtimer-go/pkg/eventlog"
	"github.com/segtimer/segtimer-go/pkg/timer"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[eventlog.Category]int
	EventsBySource   map[eventlog.Source]int
	Runs             int
	Outcomes         map[string]int
	IntervalChanges  int
	Errors           int

	// DisplayWrites counts traced digit writes; BadWrites those whose
	// digits are not a valid mm:ss clock.
	DisplayWrites int
	BadWrites     int

	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// Collect reads the whole log and aggregates it.
func Collect(path string) (*Stats, error) {
	reader, err := eventlog.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[eventlog.Category]int),
		EventsBySource:   make(map[eventlog.Source]int),
		Outcomes:         make(map[string]int),
	}

	err = each(reader, func(e eventlog.Event) error {
		stats.add(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Stats) add(e eventlog.Event) {
	s.TotalEvents++
	s.EventsByCategory[e.Category]++
	s.EventsBySource[e.Source]++

	if s.TimeRange.Start.IsZero() || e.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = e.Timestamp
	}
	if e.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = e.Timestamp
	}

	switch {
	case e.StateChange != nil:
		sc := e.StateChange
		switch {
		case sc.NewState == timer.PhaseRunning.String():
			s.Runs++
			if sc.Reason == timer.ReasonRestart {
				s.Outcomes["restarted"]++
			}
		case sc.NewState == timer.PhaseExpiring.String():
			s.Outcomes["expired"]++
		case sc.NewState == timer.PhaseStopped.String() && sc.OldState == timer.PhaseRunning.String():
			s.Outcomes["stopped"]++
		}
	case e.Config != nil:
		s.IntervalChanges++
	case e.Display != nil && e.Display.Op == "write":
		s.DisplayWrites++
		if _, err := digits.Parse(e.Display.Digits); err != nil {
			s.BadWrites++
		}
	case e.Error != nil:
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Events:    %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return nil
	}
	fmt.Fprintf(w, "Time range: %s - %s (%s)\n",
		stats.TimeRange.Start.Format(time.RFC3339),
		stats.TimeRange.End.Format(time.RFC3339),
		stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))

	fmt.Fprintln(w, "\nBy category:")
	for _, c := range []eventlog.Category{eventlog.CategoryState, eventlog.CategoryConfig, eventlog.CategoryDisplay, eventlog.CategoryError} {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", c, n)
		}
	}

	fmt.Fprintln(w, "\nBy source:")
	for _, src := range []eventlog.Source{eventlog.SourceControl, eventlog.SourceLoop, eventlog.SourceConsole} {
		if n := stats.EventsBySource[src]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", src, n)
		}
	}

	fmt.Fprintf(w, "\nRuns:      %d\n", stats.Runs)
	outcomes := make([]string, 0, len(stats.Outcomes))
	for k := range stats.Outcomes {
		outcomes = append(outcomes, k)
	}
	sort.Strings(outcomes)
	for _, k := range outcomes {
		fmt.Fprintf(w, "  %-10s %d\n", k, stats.Outcomes[k])
	}

	fmt.Fprintf(w, "Interval changes: %d\n", stats.IntervalChanges)
	if stats.DisplayWrites > 0 {
		fmt.Fprintf(w, "Display writes: %d (%d invalid)\n", stats.DisplayWrites, stats.BadWrites)
	}
	fmt.Fprintf(w, "Errors:    %d\n", stats.Errors)
	return nil
}
