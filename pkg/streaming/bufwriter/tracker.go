package bufwriter

import (
	"sync/atomic"

	"github.com/vnykmshr/goflush/pkg/streaming/signal"
)

// byteTracker counts the bytes of all outstanding writes not yet released.
// All mutation is atomic; release wakes one backpressure waiter after every
// decrement so waiters can re-check the threshold.
type byteTracker struct {
	n      atomic.Int64
	signal *signal.Signal
}

func newByteTracker(s *signal.Signal) *byteTracker {
	return &byteTracker{signal: s}
}

func (t *byteTracker) add(n int) {
	t.n.Add(int64(n))
}

// release decrements the count, flooring at zero, and notifies the signal
// unconditionally.
func (t *byteTracker) release(n int) {
	for {
		cur := t.n.Load()
		next := cur - int64(n)
		if next < 0 {
			next = 0
		}
		if t.n.CompareAndSwap(cur, next) {
			break
		}
	}
	t.signal.Notify()
}

func (t *byteTracker) exceeds(limit int64) bool {
	return t.n.Load() > limit
}

func (t *byteTracker) load() int64 {
	return t.n.Load()
}
