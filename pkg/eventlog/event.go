package eventlog

import "time"

// Event is a single timer event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies the countdown run the event belongs to.
	RunID string `cbor:"2,keyasint,omitempty"`

	// RequestID is the HTTP request that caused the event, if any.
	RequestID string `cbor:"3,keyasint,omitempty"`

	// Source is the component that produced the event.
	Source Source `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Config      *ConfigEvent      `cbor:"11,keyasint,omitempty"`
	Display     *DisplayEvent     `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Source identifies which path of the service produced an event.
type Source uint8

const (
	// SourceControl is the HTTP control surface.
	SourceControl Source = 0
	// SourceLoop is the render loop.
	SourceLoop Source = 1
	// SourceConsole is the local interactive console.
	SourceConsole Source = 2
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceControl:
		return "CONTROL"
	case SourceLoop:
		return "LOOP"
	case SourceConsole:
		return "CONSOLE"
	default:
		return "UNKNOWN"
	}
}

// ParseSource returns the Source for a case-sensitive upper-case name.
func ParseSource(s string) (Source, bool) {
	for _, src := range []Source{SourceControl, SourceLoop, SourceConsole} {
		if src.String() == s {
			return src, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a timer phase change.
	CategoryState Category = 0
	// CategoryConfig indicates a change of the default duration.
	CategoryConfig Category = 1
	// CategoryDisplay indicates a display operation.
	CategoryDisplay Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryConfig:
		return "CONFIG"
	case CategoryDisplay:
		return "DISPLAY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the Category for a case-sensitive upper-case name.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryState, CategoryConfig, CategoryDisplay, CategoryError} {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// StateChangeEvent captures a timer phase transition.
type StateChangeEvent struct {
	// OldState is the previous phase.
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new phase.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (start, stop, expired, animation_done).
	Reason string `cbor:"3,keyasint,omitempty"`

	// Seconds is the default duration at the time of the change.
	Seconds int `cbor:"4,keyasint"`
}

// ConfigEvent captures a change of the default duration.
type ConfigEvent struct {
	// OldSeconds is the previous default.
	OldSeconds int `cbor:"1,keyasint"`

	// Seconds is the new default.
	Seconds int `cbor:"2,keyasint"`
}

// DisplayEvent captures a display operation.
type DisplayEvent struct {
	// Op names the display call (write, colon, fill, clear).
	Op string `cbor:"1,keyasint"`

	// Digits is the text written, for write operations.
	Digits string `cbor:"2,keyasint,omitempty"`
}

// ErrorEventData captures errors.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
