package display

import (
	"fmt"
	"io"
	"sync"
)

// Console renders the display as text, one line per change.
//
// Lines look like "[01:29]" with the colon on, "[01 29]" with it off,
// "[88:88]" when filled and "[     ]" when blank.
type Console struct {
	mu         sync.Mutex
	w          io.Writer
	text       string
	colon      bool
	brightness int
	blink      BlinkRate
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, text: "    ", brightness: DefaultBrightness}
}

// SetBrightness records the level.
func (c *Console) SetBrightness(level int) error {
	if err := ValidateBrightness(level); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.brightness = level
	return nil
}

// SetBlinkRate records the rate.
func (c *Console) SetBlinkRate(rate BlinkRate) error {
	if err := ValidateBlinkRate(rate); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blink = rate
	return nil
}

// Clear blanks the display.
func (c *Console) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = "    "
	c.colon = false
	return c.renderLocked()
}

// SetColon toggles the colon.
func (c *Console) SetColon(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.colon == on {
		return nil
	}
	c.colon = on
	return c.renderLocked()
}

// WriteDigits shows text.
func (c *Console) WriteDigits(text string) error {
	if err := ValidateText(text); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return c.renderLocked()
}

// Fill lights or blanks every segment.
func (c *Console) Fill(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.text, c.colon = "8888", true
	} else {
		c.text, c.colon = "    ", false
	}
	return c.renderLocked()
}

// Text returns what the display currently shows, e.g. "01:29".
func (c *Console) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formatLocked()
}

func (c *Console) formatLocked() string {
	sep := " "
	if c.colon {
		sep = ":"
	}
	return c.text[:2] + sep + c.text[2:]
}

func (c *Console) renderLocked() error {
	line := "[" + c.formatLocked() + "]"
	if c.blink != BlinkOff {
		line += " blink " + c.blink.String()
	}
	if _, err := fmt.Fprintln(c.w, line); err != nil {
		return &IOError{Op: "render", Err: err}
	}
	return nil
}

var _ Display = (*Console)(nil)
