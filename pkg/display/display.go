package display

import (
	"errors"
	"fmt"
)

// Display limits.
const (
	// DigitCount is the number of character positions.
	DigitCount = 4

	// MaxBrightness is the brightest dimming level.
	MaxBrightness = 15

	// DefaultBrightness is the level used at startup (half brightness).
	DefaultBrightness = 8
)

// BlinkRate is the hardware blink frequency.
type BlinkRate uint8

const (
	BlinkOff BlinkRate = iota
	Blink2Hz
	Blink1Hz
	BlinkHalfHz
)

// String returns a human-readable blink rate.
func (b BlinkRate) String() string {
	switch b {
	case BlinkOff:
		return "off"
	case Blink2Hz:
		return "2Hz"
	case Blink1Hz:
		return "1Hz"
	case BlinkHalfHz:
		return "0.5Hz"
	default:
		return "unknown"
	}
}

// Validation errors.
var (
	ErrInvalidBrightness = errors.New("brightness out of range")
	ErrInvalidBlinkRate  = errors.New("blink rate out of range")
	ErrInvalidText       = errors.New("text not displayable")
)

// Display is a 4-character segment display with a center colon.
type Display interface {
	// SetBrightness sets the dimming level, 0 to MaxBrightness.
	SetBrightness(level int) error

	// SetBlinkRate sets hardware blinking.
	SetBlinkRate(rate BlinkRate) error

	// Clear blanks every segment, including the colon.
	Clear() error

	// SetColon turns the center colon on or off.
	SetColon(on bool) error

	// WriteDigits shows exactly DigitCount characters. Digits, space and
	// '-' are supported. The colon is left as is.
	WriteDigits(text string) error

	// Fill lights every segment (on) or blanks them (off).
	Fill(on bool) error
}

// IOError is a failure reported by the display hardware.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("display %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Init applies the startup sequence: brightness, blinking off, blank.
func Init(d Display, brightness int) error {
	if err := d.SetBrightness(brightness); err != nil {
		return err
	}
	if err := d.SetBlinkRate(BlinkOff); err != nil {
		return err
	}
	return d.Clear()
}

// ValidateBrightness checks a dimming level.
func ValidateBrightness(level int) error {
	if level < 0 || level > MaxBrightness {
		return fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidBrightness, level, MaxBrightness)
	}
	return nil
}

// ValidateBlinkRate checks a blink rate.
func ValidateBlinkRate(rate BlinkRate) error {
	if rate > BlinkHalfHz {
		return fmt.Errorf("%w: %d", ErrInvalidBlinkRate, rate)
	}
	return nil
}

// ValidateText checks that text can be shown.
func ValidateText(text string) error {
	if len(text) != DigitCount {
		return fmt.Errorf("%w: %q has %d characters, want %d", ErrInvalidText, text, len(text), DigitCount)
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c < '0' || c > '9') && c != ' ' && c != '-' {
			return fmt.Errorf("%w: %q at %d", ErrInvalidText, c, i)
		}
	}
	return nil
}
