package ht16k33

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Closer is a Device bound to a bus it owns.
type Closer struct {
	*Device
	bus i2c.BusCloser
}

// Open initialises the host drivers, opens the named I2C bus ("" for the
// first available) and attaches to the controller at addr.
func Open(busName string, addr uint16) (*Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise host drivers: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open i2c bus %q: %w", busName, err)
	}

	dev, err := New(bus, addr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to attach ht16k33 at 0x%02x: %w", addr, err)
	}

	return &Closer{Device: dev, bus: bus}, nil
}

// Close blanks the display and releases the bus.
func (c *Closer) Close() error {
	clearErr := c.Device.Clear()
	if err := c.bus.Close(); err != nil {
		return err
	}
	return clearErr
}
