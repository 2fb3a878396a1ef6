// Package digits implements the four-digit mm:ss clock shown on the display.
//
// A Clock is a fixed array of decimal digits addressed the same way as the
// physical display: minutes tens, minutes units, seconds tens, seconds units.
// The two minute digits and the seconds-units digit count in base 10, the
// seconds-tens digit counts in base 6, so decrementing is a mixed-radix
// borrow chain over a flat array.
//
// # Range
//
// Minutes are limited to 99 because only two minute digits exist. The limit is
// enforced by ValidateSeconds, which both FromSeconds and the timer's duration
// configuration use.
//
// # Floor
//
// Decrementing 00:00 leaves the clock at 00:00. Digits never go negative.
package digits
