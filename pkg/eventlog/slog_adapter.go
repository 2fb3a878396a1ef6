package eventlog

import (
	"context"
	"log/slog"
	"strings"
)

// SlogAdapter mirrors events into operational logs at debug level. The
// payload is nested under a group named after the category.
type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Log(event Event) {
	ctx := context.Background()
	if !a.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := make([]slog.Attr, 0, 4)
	attrs = append(attrs, slog.String("source", strings.ToLower(event.Source.String())))
	if event.RunID != "" {
		attrs = append(attrs, slog.String("run_id", event.RunID))
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if p, ok := payloadAttr(event); ok {
		attrs = append(attrs, p)
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, "event "+strings.ToLower(event.Category.String()), attrs...)
}

func payloadAttr(event Event) (slog.Attr, bool) {
	switch {
	case event.StateChange != nil:
		sc := event.StateChange
		return slog.Group("state",
			slog.String("old", sc.OldState),
			slog.String("new", sc.NewState),
			slog.String("reason", sc.Reason),
			slog.Int("seconds", sc.Seconds),
		), true
	case event.Config != nil:
		return slog.Group("config",
			slog.Int("old_seconds", event.Config.OldSeconds),
			slog.Int("seconds", event.Config.Seconds),
		), true
	case event.Display != nil:
		return slog.Group("display",
			slog.String("op", event.Display.Op),
			slog.String("digits", event.Display.Digits),
		), true
	case event.Error != nil:
		return slog.Group("error",
			slog.String("message", event.Error.Message),
			slog.String("context", event.Error.Context),
		), true
	}
	return slog.Attr{}, false
}

var _ Logger = (*SlogAdapter)(nil)
