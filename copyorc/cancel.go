// Package copyorc implements the unified cloud-to-cloud copy orchestrator:
// a transport-agnostic download-then-upload loop driven against
// caller-supplied read/write callbacks, with cooperative cancellation and
// progress reporting.
//
// Grounded on the teacher's root atomicBool (formerly flags.go's devMode/
// fipsMode flags): a sync/atomic-backed boolean checked at loop
// checkpoints, generalized here into a cancel flag the caller owns and the
// orchestrator only ever reads.
package copyorc

import "sync/atomic"

// CancelFlag is a cooperative cancellation flag. The caller owns its
// storage and sets it from whatever triggers cancellation (a signal
// handler, a UI button, a deadline); the orchestrator only reads it,
// atomically, at each loop checkpoint.
type CancelFlag struct {
	flag int32
}

// Cancel marks the flag as set. Safe to call multiple times and from any
// goroutine.
func (f *CancelFlag) Cancel() {
	atomic.StoreInt32(&f.flag, 1)
}

// IsSet reports whether Cancel has been called.
func (f *CancelFlag) IsSet() bool {
	return atomic.LoadInt32(&f.flag) != 0
}
