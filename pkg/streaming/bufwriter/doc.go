/*
Package bufwriter provides an asynchronous, backpressure-bounded buffer
writer.

A BufferWriter decouples a producer filling byte buffers from a sink that
drains them asynchronously, while bounding the amount of unwritten memory
in flight. Buffers are rented from a pool, handed off by move through the
pending-buffer / outstanding-queue / sink pipeline, and returned to the
pool exactly once.

# Quick Start

	p := pool.New()
	sink := bufwriter.SinkFromWriter(file)

	w, err := bufwriter.New(sink, p)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	buf := w.GetBuffer(len(record))
	n := copy(buf, record)
	w.Advance(n)

	if ok, err := w.Flush(time.Second); err != nil {
		log.Fatal(err)
	} else if !ok {
		// backpressure timeout; pending bytes remain for a retry
	}

# Filling Buffers

GetBuffer returns a writable region of at least the hinted size; Advance
commits bytes into the pending batch. Once the committed total exceeds
MinWriteSize the batch is enqueued automatically without waiting on
backpressure. The fill side is single-writer: GetBuffer and Advance must
not be called concurrently.

# Backpressure

Flush checks the outstanding byte count against MaxOutstandingBytes
before enqueuing and waits while the ceiling is exceeded. A timed-out
Flush returns false and leaves the pending bytes intact; a canceled
FlushContext propagates the context error. Neither ever interrupts a
write already handed to the sink.

# Draining

A single logical drain sequence moves batches to the sink in FIFO order.
It has no dedicated goroutine: whichever call wakes the writer from idle
runs the first step on its own stack, and writes that complete
synchronously are finalized in a loop right there, with no hand-off.
Only when the sink suspends does the sequence relocate to a completion
goroutine.

# Failure Handling

The first sink failure is captured for the writer's lifetime. Queued
batches behind a failure are released without being written, so memory
always drains, and the failure is returned, wrapped, by the next Flush or
Close:

	if _, err := w.Flush(0); errors.Is(err, gferrors.ErrSinkFailed) {
		// the sink broke at some earlier write
	}

# Monitoring

Writers report through OnFlush/OnError callbacks, a Stats snapshot, and
optional Prometheus metrics via pkg/metrics.

See example tests for more usage patterns.
*/
package bufwriter
