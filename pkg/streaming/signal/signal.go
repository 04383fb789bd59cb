package signal

import (
	"context"
	"time"
)

// Signal is a single-slot, auto-resetting notification. A Notify with no
// waiter leaves at most one pending wake-up for the next waiter; further
// notifications coalesce into it.
//
// The zero value is not usable; call New.
type Signal struct {
	ch chan struct{}
}

// New creates a Signal with no pending notification.
func New() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Notify wakes at most one waiter. If no waiter is present, the next call
// to Wait or WaitContext returns immediately. Notify never blocks.
func (s *Signal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait blocks the calling goroutine until notified or the timeout elapses.
// A timeout <= 0 waits indefinitely. It reports whether the caller was
// woken by a notification.
func (s *Signal) Wait(timeout time.Duration) bool {
	if timeout <= 0 {
		<-s.ch
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-s.ch:
		return true
	case <-timer.C:
		return false
	}
}

// WaitContext blocks until notified, the timeout elapses, or ctx is
// canceled. A timeout <= 0 waits until notification or cancellation.
// It returns (true, nil) when woken, (false, nil) on timeout, and
// (false, ctx.Err()) on cancellation.
func (s *Signal) WaitContext(ctx context.Context, timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		select {
		case <-s.ch:
			return true, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-s.ch:
		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
