package digits

import (
	"errors"
	"fmt"
)

// Clock limits.
const (
	// Len is the number of digits on the display.
	Len = 4

	// MaxMinutes is the largest minute value two digits can show.
	MaxMinutes = 99

	// MaxSeconds is the longest duration a Clock can hold (99:59).
	MaxSeconds = MaxMinutes*60 + 59
)

// Digit positions.
const (
	MinutesTens = iota
	MinutesUnits
	SecondsTens
	SecondsUnits
)

// ErrConfiguration is returned when a duration cannot be shown as mm:ss.
var ErrConfiguration = errors.New("duration not representable as mm:ss")

// wrapTo is the value a digit takes when it underflows. The minutes-tens
// digit has no entry since nothing more significant can lend to it.
var wrapTo = [Len]int{MinutesTens: -1, MinutesUnits: 9, SecondsTens: 5, SecondsUnits: 9}

// Clock holds mm:ss as four decimal digits.
// The zero value is 00:00.
type Clock [Len]int

// ValidateSeconds reports whether total seconds fit the display.
func ValidateSeconds(total int) error {
	if total < 0 {
		return fmt.Errorf("%w: %d seconds is negative", ErrConfiguration, total)
	}
	if minutes := total / 60; minutes > MaxMinutes {
		return fmt.Errorf("%w: %d minutes exceeds %d", ErrConfiguration, minutes, MaxMinutes)
	}
	return nil
}

// FromSeconds converts a duration in whole seconds to a Clock.
func FromSeconds(total int) (Clock, error) {
	if err := ValidateSeconds(total); err != nil {
		return Clock{}, err
	}
	minutes, seconds := total/60, total%60
	return Clock{minutes / 10, minutes % 10, seconds / 10, seconds % 10}, nil
}

// MustFromSeconds is like FromSeconds but panics on an invalid duration.
func MustFromSeconds(total int) Clock {
	c, err := FromSeconds(total)
	if err != nil {
		panic(err)
	}
	return c
}

// Decrement returns the clock one second earlier and whether it is now 00:00.
// A clock already at 00:00 is returned unchanged.
func (c Clock) Decrement() (Clock, bool) {
	if c.IsZero() {
		return c, true
	}

	for i := SecondsUnits; i >= MinutesTens; i-- {
		c[i]--
		if c[i] >= 0 {
			break
		}
		// Unreachable for index 0 because the clock is non-zero.
		c[i] = wrapTo[i]
	}

	return c, c.IsZero()
}

// IsZero reports whether all digits are 0.
func (c Clock) IsZero() bool {
	return c == Clock{}
}

// Minutes returns the minute part.
func (c Clock) Minutes() int {
	return c[MinutesTens]*10 + c[MinutesUnits]
}

// Seconds returns the total duration in seconds.
func (c Clock) Seconds() int {
	return c.Minutes()*60 + c[SecondsTens]*10 + c[SecondsUnits]
}

// String returns the four digit characters without a separator, which is
// what the display is written with. The colon is a separate display flag.
func (c Clock) String() string {
	var b [Len]byte
	for i, d := range c {
		b[i] = byte('0' + d)
	}
	return string(b[:])
}

// Format returns the clock as "mm:ss".
func (c Clock) Format() string {
	s := c.String()
	return s[:2] + ":" + s[2:]
}

// Parse reads four digit characters as produced by String.
func Parse(text string) (Clock, error) {
	var c Clock
	if len(text) != Len {
		return c, fmt.Errorf("invalid clock %q: want %d digits", text, Len)
	}
	for i := 0; i < Len; i++ {
		ch := text[i]
		if ch < '0' || ch > '9' {
			return Clock{}, fmt.Errorf("invalid clock %q: non-digit at %d", text, i)
		}
		c[i] = int(ch - '0')
	}
	if c[SecondsTens] > 5 {
		return Clock{}, fmt.Errorf("invalid clock %q: seconds exceed 59", text)
	}
	return c, nil
}
