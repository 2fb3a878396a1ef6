// Package history keeps a SQLite record of countdown runs.
//
// A Store is an eventlog.Logger: it watches the timer's state events and
// opens a row when a countdown starts, closing it when the countdown expires,
// is stopped, or is restarted. It records what happened; it is never used to
// restore the timer after a restart of the service.
package history
