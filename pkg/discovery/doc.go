// Package discovery advertises the timer on the local network over mDNS.
//
// The service type is _segtimer._tcp. TXT records carry the firmware
// version, the control paths and the current timer phase, so a client can
// find the device and the endpoints without configuration:
//
//	version=1.0.0
//	status_path=/timerStatus
//	interval_path=/timerInterval
//	state=RUNNING
//
// An Announcer keeps the advertisement in step with the timer: it updates
// the state record on every phase change.
package discovery
