// Package control validates external start, stop and interval requests and
// applies them to the timer.
//
// The HTTP server and the interactive console both go through a Controller,
// so argument checking and the display clear on start/stop live in one place.
// Rejected requests return a *ValidationError and leave the timer untouched.
package control
