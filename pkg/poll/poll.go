// Package poll provides the bounded polling primitive used for both
// outlet-state waits and reachability waits.
package poll

import (
	"errors"
	"time"
)

// ErrTimeout is returned by Until when the budget runs out before the
// probe reports the wanted value. Callers wrap it with the outlet/host
// context they have.
var ErrTimeout = errors.New("timed out waiting for value")

// Until repeatedly evaluates probe until it returns want, sleeping one
// interval between evaluations. A probe error is returned immediately
// and unwrapped; it is never retried.
//
// The remaining budget is decremented by one interval after each failed
// probe, and the next sleep is admitted while the remainder is still
// >= 0. The probe may therefore be evaluated one extra time after the
// nominal deadline: with timeout=10s and interval=5s a never-matching
// probe is evaluated exactly 3 times (budget 10 -> 5 -> 0 -> -5). This
// inclusive boundary is intentional, documented behavior.
func Until[T comparable](probe func() (T, error), want T, interval, timeout time.Duration) error {
	remaining := timeout
	for {
		got, err := probe()
		if err != nil {
			return err
		}
		if got == want {
			return nil
		}
		remaining -= interval
		if remaining < 0 {
			return ErrTimeout
		}
		time.Sleep(interval)
	}
}
