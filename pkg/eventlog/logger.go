package eventlog

// Logger receives timer events. The timer calls Log after releasing its lock,
// one event at a time and in transition order. Implementations may read the
// timer but must not change it from Log, and must be safe for concurrent use
// since the render loop logs display events on its own.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards all events.
type NoopLogger struct{}

func (NoopLogger) Log(Event) {}

// MultiLogger fans each event out to several loggers in order.
type MultiLogger []Logger

// NewMultiLogger drops nil entries from loggers.
func NewMultiLogger(loggers ...Logger) MultiLogger {
	m := make(MultiLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			m = append(m, l)
		}
	}
	return m
}

func (m MultiLogger) Log(event Event) {
	for _, l := range m {
		l.Log(event)
	}
}
