package control

import (
	"errors"
	"fmt"
)

// Response messages for rejected requests.
const (
	MsgInvalidArgument = "Argument invalid"
	MsgSecondsTooHigh  = "Argument invalid: number of seconds is too high"
)

// Sentinel errors wrapped by ValidationError.
var (
	// ErrInvalidAction is returned for a timerStatus action other than start or stop.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidSeconds is returned when the interval is not a non-negative integer.
	ErrInvalidSeconds = errors.New("invalid seconds")
)

// ValidationError is a request the controller refused. Message is the text
// returned to the client.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Detail includes the offending field for logs.
func (e *ValidationError) Detail() string {
	return fmt.Sprintf("%s=%q: %v", e.Field, e.Value, e.Err)
}
