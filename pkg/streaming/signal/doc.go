/*
Package signal provides a single-slot, auto-resetting wake-up primitive.

A Signal coordinates one waiter with any number of notifiers. Notify wakes
at most one waiter; if nobody is waiting, at most one notification is
retained for the next waiter. Waiters are expected to re-check their
condition in a loop after waking, so coalescing redundant notifications
is safe and avoids wake-up storms.

# Quick Start

	s := signal.New()

	// waiter
	for conditionHolds() {
		if !s.Wait(time.Second) {
			return // timed out
		}
	}

	// notifier
	s.Notify()

The context variant adds cancellation:

	woken, err := s.WaitContext(ctx, 0)

# Thread Safety

All methods are safe for concurrent use.
*/
package signal
