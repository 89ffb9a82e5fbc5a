package ports

import (
	"time"
)

// TimerHandle identifies a pending scheduled callback.
// The zero value never identifies a pending callback.
type TimerHandle uint64

// Scheduler abstracts the host event loop.
// Callbacks are dispatched one at a time on the loop, never concurrently with each other.
type Scheduler interface {
	// After schedules fn to run once on the loop after d has elapsed.
	After(d time.Duration, fn func()) TimerHandle

	// Cancel drops a pending callback. Cancelling an unknown or already fired handle is a no-op.
	Cancel(h TimerHandle)
}
