// Package commands implements the segtimer-log subcommands.
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/segtimer/segtimer-go/pkg/eventlog"
)

// ParseSourceFlag parses a source name (control, loop, console).
func ParseSourceFlag(s string) (eventlog.Source, error) {
	src, ok := eventlog.ParseSource(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("unknown source: %s (valid: control, loop, console)", s)
	}
	return src, nil
}

// ParseCategoryFlag parses a category name (state, config, display, error).
func ParseCategoryFlag(s string) (eventlog.Category, error) {
	c, ok := eventlog.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("unknown category: %s (valid: state, config, display, error)", s)
	}
	return c, nil
}

// FilterOptions holds the filter flags shared by view and filter.
type FilterOptions struct {
	RunID     string
	Source    string
	Category  string
	TimeStart string
	TimeEnd   string
}

// Build converts the flag values to an eventlog.Filter.
func (o FilterOptions) Build() (eventlog.Filter, error) {
	filter := eventlog.Filter{RunID: o.RunID}

	if o.Source != "" {
		s, err := ParseSourceFlag(o.Source)
		if err != nil {
			return filter, err
		}
		filter.Source = &s
	}

	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}
