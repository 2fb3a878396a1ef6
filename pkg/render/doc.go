// Package render runs the once-per-second loop that shows the countdown.
//
// Each tick the loop snapshots the timer, writes the digits and the colon to
// the display outside the timer lock, and then decrements the timer for the
// snapshot it rendered. When the countdown reaches zero the loop plays the
// end-of-time animation (five full-on/blank flashes of half a second each)
// before returning the timer to Stopped. A start or stop during the
// animation cuts it short.
//
// Drift from display latency is not corrected; the period is best effort.
package render
