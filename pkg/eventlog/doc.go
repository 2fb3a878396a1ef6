// Package eventlog records what the timer did, as opposed to what the
// service printed.
//
// The timer, render loop and control surface emit an Event for each phase
// change, duration change and display failure. Sinks implement Logger:
//
//   - SlogAdapter mirrors events into the operational log at debug level
//   - FileLogger appends them to a .tlog file (CBOR records, integer keys)
//   - history.Store turns state events into run rows
//
// MultiLogger combines sinks. Reader and Filter read .tlog files back; the
// segtimer-log command is built on them.
//
// The Origin stored in a context tells the timer which path (HTTP, loop,
// console) and which request caused a change, so events can be correlated
// with access logs through the X-Request-ID header.
package eventlog
