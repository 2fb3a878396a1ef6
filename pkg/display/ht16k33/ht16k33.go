// Package ht16k33 drives a 4-digit 7-segment display on an HT16K33 backpack.
//
// The controller keeps 16 bytes of display RAM. On the 4-digit backpacks the
// digits live at RAM bytes 0, 2, 6 and 8 and byte 4 carries the center colon
// (bit 0x02) and, on the large 1.2" boards, the extra dots. The whole RAM is
// rewritten on every change.
package ht16k33

import (
	"fmt"
	"sync"

	"github.com/segtimer/segtimer-go/pkg/display"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the factory I2C address of the backpack.
const DefaultAddress = 0x70

// Controller commands.
const (
	cmdSystemSetup  = 0x20
	cmdDisplaySetup = 0x80
	cmdDimming      = 0xE0

	oscillatorOn = 0x01
	displayOn    = 0x01
)

const (
	ramSize   = 16
	colonByte = 4
	colonBit  = 0x02
)

// digitPositions maps character positions to display RAM bytes.
var digitPositions = [display.DigitCount]int{0, 2, 6, 8}

// font maps characters to segment bits (gfedcba).
var font = map[byte]byte{
	'0': 0x3F, '1': 0x06, '2': 0x5B, '3': 0x4F, '4': 0x66,
	'5': 0x6D, '6': 0x7D, '7': 0x07, '8': 0x7F, '9': 0x6F,
	' ': 0x00, '-': 0x40,
}

// Device is an HT16K33 4-digit display.
type Device struct {
	mu    sync.Mutex
	dev   *i2c.Dev
	ram   [ramSize]byte
	blink display.BlinkRate
}

// New wakes the controller at addr on bus and blanks the display.
func New(bus i2c.Bus, addr uint16) (*Device, error) {
	d := &Device{dev: &i2c.Dev{Bus: bus, Addr: addr}}

	if err := d.command("init", cmdSystemSetup|oscillatorOn); err != nil {
		return nil, err
	}
	if err := d.SetBlinkRate(display.BlinkOff); err != nil {
		return nil, err
	}
	if err := d.Clear(); err != nil {
		return nil, err
	}
	return d, nil
}

// String identifies the device.
func (d *Device) String() string {
	return fmt.Sprintf("ht16k33(%s)", d.dev)
}

// SetBrightness sets the dimming level.
func (d *Device) SetBrightness(level int) error {
	if err := display.ValidateBrightness(level); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.command("brightness", cmdDimming|byte(level))
}

// SetBlinkRate sets hardware blinking. The display stays switched on.
func (d *Device) SetBlinkRate(rate display.BlinkRate) error {
	if err := display.ValidateBlinkRate(rate); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.command("blink", cmdDisplaySetup|displayOn|byte(rate)<<1); err != nil {
		return err
	}
	d.blink = rate
	return nil
}

// Clear blanks every segment.
func (d *Device) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ram = [ramSize]byte{}
	return d.flush("clear")
}

// SetColon turns the center colon on or off.
func (d *Device) SetColon(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		d.ram[colonByte] |= colonBit
	} else {
		d.ram[colonByte] &^= colonBit
	}
	return d.flush("colon")
}

// WriteDigits shows four characters, keeping the colon.
func (d *Device) WriteDigits(text string) error {
	if err := display.ValidateText(text); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := 0; i < display.DigitCount; i++ {
		d.ram[digitPositions[i]] = font[text[i]]
	}
	return d.flush("write")
}

// Fill lights or blanks every segment.
func (d *Device) Fill(on bool) error {
	var v byte
	if on {
		v = 0xFF
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.ram {
		d.ram[i] = v
	}
	return d.flush("fill")
}

// flush writes the whole display RAM starting at address 0.
func (d *Device) flush(op string) error {
	buf := make([]byte, 0, ramSize+1)
	buf = append(buf, 0x00)
	buf = append(buf, d.ram[:]...)
	if err := d.dev.Tx(buf, nil); err != nil {
		return &display.IOError{Op: op, Err: err}
	}
	return nil
}

func (d *Device) command(op string, cmd byte) error {
	if err := d.dev.Tx([]byte{cmd}, nil); err != nil {
		return &display.IOError{Op: op, Err: err}
	}
	return nil
}

var _ display.Display = (*Device)(nil)
