// Package timer holds the shared countdown state.
//
// A State is touched by two paths: the control path (HTTP requests and the
// console) starts, stops and reconfigures it, and the render loop decrements
// it once per second. Every operation runs under one mutex so a reset can
// never interleave with a borrow chain.
//
// # Phases
//
//	Stopped  --Start-->           Running
//	Running  --Stop-->            Stopped
//	Running  --tick reaches zero-> Expiring --FinishExpiry--> Stopped
//	Expiring --Start/Stop-->      Running/Stopped
//
// While not Running the clock holds the reset value derived from the default
// duration; there is no paused state. Leaving Expiring through Start or Stop
// closes the channel returned with the expiring tick so the render loop can
// cut its animation short.
//
// # Epochs
//
// Every phase change bumps an epoch. The render loop passes back the snapshot
// it rendered; a tick whose snapshot epoch is stale is dropped, so a start or
// stop that lands between render and decrement is never decremented early.
package timer
