package commands

import (
	"fmt"

	"github.com/segtimer/segtimer-go/pkg/eventlog"
)

// RunFilter copies matching events to a new log file and returns how many
// were written.
func RunFilter(path, output string, filter eventlog.Filter) (int, error) {
	reader, err := eventlog.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := eventlog.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	err = each(reader, func(e eventlog.Event) error {
		logger.Log(e)
		count++
		return nil
	})
	return count, err
}
