// Package xtime provides the clock of notifications.
package xtime

import (
	"sync/atomic"
	"time"
)

var last atomic.Int64

// Now returns the current time in UTC with nanosecond precision. Every call
// returns a time that is strictly after the time of the previous call, so that
// notifications that are created in succession can be ordered by time, even
// on machines whose clock only provides microsecond precision.
func Now() time.Time {
	for {
		now := time.Now().UnixNano()
		prev := last.Load()
		if now <= prev {
			now = prev + 1
		}
		if last.CompareAndSwap(prev, now) {
			return time.Unix(0, now).UTC()
		}
	}
}
