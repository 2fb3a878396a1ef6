// Package display defines the segment display the timer renders to.
//
// The Display interface is the only thing the render loop and the control
// surface know about the hardware. Implementations:
//
//   - ht16k33.Device drives an HT16K33 backpack with a 4-digit 7-segment
//     display over I2C.
//   - Console prints what the display would show, for development.
//   - Noop discards everything, for headless runs.
//
// Implementations must be safe for concurrent use: the control path clears
// the display while the render loop may be writing to it.
package display
