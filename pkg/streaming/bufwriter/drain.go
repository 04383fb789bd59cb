package bufwriter

// Writer drain states. The tri-state flag, not a lock, guarantees that at
// most one logical drain sequence runs at a time.
const (
	// stateIdle: queue empty, no drain running.
	stateIdle int32 = iota

	// statePending: at least one enqueue happened since the drain last
	// confirmed an empty queue; a drain step is owed.
	statePending

	// stateDraining: a drain sequence is executing.
	stateDraining
)

// markPending forces the state to pending and reports whether the writer
// was idle, in which case the caller owns the initial drain step. An
// enqueue against a running drain only flips draining back to pending,
// making the drain re-check the queue before it can exit.
func (w *BufferWriter) markPending() bool {
	for {
		s := w.state.Load()
		if s == statePending {
			return false
		}
		if w.state.CompareAndSwap(s, statePending) {
			return s == stateIdle
		}
	}
}

// drain dequeues outstanding writes and submits them to the sink until the
// queue is confirmed empty. It runs iteratively on the current stack for
// synchronously completing writes; when a write suspends, the remainder of
// the sequence relocates to a completion goroutine and drain returns.
func (w *BufferWriter) drain() {
	w.state.Store(stateDraining)

	for {
		buf, ok := w.dequeue()
		if !ok {
			if w.state.CompareAndSwap(stateDraining, stateIdle) {
				return
			}
			// A concurrent enqueue flipped us back to pending between the
			// empty check and the CAS. Re-check the queue instead of
			// exiting so the new write is not stranded.
			w.state.Store(stateDraining)
			continue
		}

		if w.stickyError() != nil {
			// The sink already failed; drain the memory without
			// hammering it with writes that can only fail again.
			w.discard(buf)
			continue
		}

		done, err := w.sink.WriteAsync(buf)
		if done == nil {
			// Fast path: completed on this stack, keep looping.
			w.finish(buf, err)
			continue
		}

		go func() {
			w.finish(buf, <-done)
			w.drain()
		}()
		return
	}
}

// dequeue pops the oldest outstanding write. The mutex guards only the
// queue slice, never the drain itself.
func (w *BufferWriter) dequeue() ([]byte, bool) {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()

	if len(w.queue) == 0 {
		return nil, false
	}
	buf := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return buf, true
}

// finish records the outcome of a completed sink write and releases its
// buffer. The first failure wins; later ones are dropped.
func (w *BufferWriter) finish(buf []byte, err error) {
	if err != nil {
		w.captureFailure(err)
		w.statSinkErrors.Add(1)
		if w.config.Metrics != nil {
			w.config.Metrics.WriterSinkErrors.WithLabelValues(w.config.Name).Inc()
		}
		if w.config.OnError != nil {
			w.config.OnError(err)
		}
	}
	w.release(buf)
}

// discard releases a dequeued write without submitting it to the sink.
func (w *BufferWriter) discard(buf []byte) {
	w.statDiscarded.Add(1)
	if w.config.Metrics != nil {
		w.config.Metrics.WriterDiscardedWrites.WithLabelValues(w.config.Name).Inc()
	}
	w.release(buf)
}

// release returns a buffer to the pool exactly once and decrements the
// outstanding byte count, waking any backpressure waiter.
func (w *BufferWriter) release(buf []byte) {
	n := len(buf)
	w.pool.Return(buf)
	w.tracker.release(n)
	if w.config.Metrics != nil {
		w.config.Metrics.WriterOutstandingBytes.WithLabelValues(w.config.Name).Set(float64(w.tracker.load()))
	}
}

// captureFailure records the first sink failure for the writer's lifetime.
func (w *BufferWriter) captureFailure(err error) {
	w.failure.CompareAndSwap(nil, &err)
}

// stickyError returns the captured sink failure, if any.
func (w *BufferWriter) stickyError() error {
	if p := w.failure.Load(); p != nil {
		return *p
	}
	return nil
}
