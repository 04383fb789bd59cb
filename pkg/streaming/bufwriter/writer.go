package bufwriter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/goflush/pkg/buffer/pool"
	gfcontext "github.com/vnykmshr/goflush/pkg/common/context"
	gferrors "github.com/vnykmshr/goflush/pkg/common/errors"
	"github.com/vnykmshr/goflush/pkg/common/validation"
	"github.com/vnykmshr/goflush/pkg/metrics"
	"github.com/vnykmshr/goflush/pkg/streaming/signal"
)

// Default configuration values.
const (
	// DefaultMinWriteSize is the number of bytes accumulated before an
	// implicit flush (4KB).
	DefaultMinWriteSize = 4 << 10

	// DefaultMaxOutstandingBytes is the backpressure ceiling (64KB).
	DefaultMaxOutstandingBytes = 64 << 10
)

// Config holds configuration options for BufferWriter.
type Config struct {
	// MinWriteSize is the number of committed bytes after which Advance
	// triggers an implicit flush. Must be >= 0. A zero value in
	// NewWithConfig means flush on every Advance; New uses
	// DefaultMinWriteSize.
	MinWriteSize int

	// MaxOutstandingBytes is the backpressure ceiling: while more than
	// this many bytes are in flight, Flush waits before enqueuing more.
	// Must be > 0 and >= MinWriteSize. Zero means DefaultMaxOutstandingBytes.
	MaxOutstandingBytes int

	// OnFlush is called after each batch is enqueued, with its size in
	// bytes. It may run on the goroutine calling Flush or Advance.
	OnFlush func(bytes int)

	// OnError is called when a sink write fails. It may run on a drain
	// completion goroutine and must be fast and safe for concurrent use.
	OnError func(error)

	// Metrics, if non-nil, receives writer counters and gauges.
	Metrics *metrics.Registry

	// Name is the writer_name label used for metrics. Defaults to "default".
	Name string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		MinWriteSize:        DefaultMinWriteSize,
		MaxOutstandingBytes: DefaultMaxOutstandingBytes,
	}
}

// Stats holds counters describing a writer's activity so far.
type Stats struct {
	// Flushes is the number of batches enqueued for writing.
	Flushes int64

	// FlushedBytes is the total bytes enqueued for writing.
	FlushedBytes int64

	// AutoFlushes is the number of implicit flushes triggered by Advance.
	AutoFlushes int64

	// SinkErrors is the number of failed sink writes.
	SinkErrors int64

	// DiscardedWrites is the number of queued writes released without
	// being submitted after a sink failure.
	DiscardedWrites int64

	// BackpressureWaits is the number of flush calls that had to wait
	// for in-flight bytes to drop.
	BackpressureWaits int64

	// OutstandingBytes is the current number of bytes in flight.
	OutstandingBytes int64

	// PendingBytes is the number of committed bytes not yet flushed.
	PendingBytes int
}

// BufferWriter decouples a producer filling byte buffers from a sink that
// drains them asynchronously, bounding the amount of unwritten memory in
// flight.
//
// The fill side (GetBuffer, Advance) is single-writer: it must not be
// called from multiple goroutines concurrently, nor concurrently with
// Close. Flush and Close coordinate with the internal drain through
// atomics and are safe against it.
type BufferWriter struct {
	sink   Sink
	pool   pool.Pool
	config Config

	// pending is the buffer currently owned by the producer; its length
	// is the number of committed bytes.
	pending      []byte
	regionHanded bool

	queueMu sync.Mutex
	queue   [][]byte

	state   atomic.Int32
	signal  *signal.Signal
	tracker *byteTracker
	failure atomic.Pointer[error]
	closed  atomic.Bool

	statFlushes      atomic.Int64
	statFlushedBytes atomic.Int64
	statAutoFlushes  atomic.Int64
	statSinkErrors   atomic.Int64
	statDiscarded    atomic.Int64
	statBackpressure atomic.Int64
}

// New creates a BufferWriter with the default configuration.
func New(sink Sink, bufPool pool.Pool) (*BufferWriter, error) {
	return NewWithConfig(sink, bufPool, DefaultConfig())
}

// NewWithConfig creates a BufferWriter with the given configuration.
func NewWithConfig(sink Sink, bufPool pool.Pool, config Config) (*BufferWriter, error) {
	if sink == nil {
		return nil, validation.ValidateNotNil("bufwriter", "sink", nil)
	}
	if bufPool == nil {
		return nil, validation.ValidateNotNil("bufwriter", "pool", nil)
	}
	if config.MaxOutstandingBytes == 0 {
		config.MaxOutstandingBytes = DefaultMaxOutstandingBytes
	}
	if config.Name == "" {
		config.Name = "default"
	}

	if err := validation.ValidateNonNegative("bufwriter", "minWriteSize", config.MinWriteSize); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("bufwriter", "maxOutstandingBytes", config.MaxOutstandingBytes); err != nil {
		return nil, err
	}
	if err := validation.ValidateAtLeast("bufwriter", "maxOutstandingBytes", config.MaxOutstandingBytes, config.MinWriteSize); err != nil {
		return nil, err
	}

	sig := signal.New()
	return &BufferWriter{
		sink:    sink,
		pool:    bufPool,
		config:  config,
		signal:  sig,
		tracker: newByteTracker(sig),
	}, nil
}

// GetBuffer returns a writable region of at least sizeHint contiguous
// bytes for the producer to fill. Bytes become part of the pending batch
// only after a matching Advance call.
//
// If the current pending buffer cannot fit sizeHint more bytes, its
// committed contents are first flushed with an unbounded wait; the wait
// parks the calling goroutine until in-flight bytes drop below the
// backpressure ceiling.
//
// A negative sizeHint, or calling after Close, is a programming error and
// panics.
func (w *BufferWriter) GetBuffer(sizeHint int) []byte {
	w.ensureOpen()
	if sizeHint < 0 {
		panic("bufwriter: negative size hint")
	}
	if sizeHint == 0 {
		sizeHint = 1
	}

	if w.pending != nil && cap(w.pending)-len(w.pending) < sizeHint {
		if len(w.pending) == 0 {
			// Nothing committed; just swap for a bigger buffer.
			w.pool.Return(w.pending)
			w.pending = nil
		} else {
			// The committed bytes have to go out before a replacement
			// buffer can be handed out.
			_, _ = w.awaitCapacity(context.Background())
			w.enqueuePending()
		}
	}

	if w.pending == nil {
		size := sizeHint
		if size < w.config.MinWriteSize {
			size = w.config.MinWriteSize
		}
		w.pending = w.pool.Rent(size)
	}

	w.regionHanded = true
	return w.pending[len(w.pending):cap(w.pending)]
}

// Advance commits count bytes of the region returned by the previous
// GetBuffer call. When the committed total exceeds MinWriteSize, the
// pending batch is enqueued immediately; the implicit flush never waits
// on backpressure.
//
// Advancing past the end of the region, a negative count, or calling
// without a prior GetBuffer is a programming error and panics.
func (w *BufferWriter) Advance(count int) {
	w.ensureOpen()
	if count < 0 {
		panic("bufwriter: negative advance count")
	}
	if !w.regionHanded {
		panic("bufwriter: Advance without a prior GetBuffer")
	}
	if count > cap(w.pending)-len(w.pending) {
		panic("bufwriter: advance past end of buffer region")
	}

	w.pending = w.pending[:len(w.pending)+count]
	w.regionHanded = false

	if len(w.pending) > w.config.MinWriteSize {
		w.statAutoFlushes.Add(1)
		if w.config.Metrics != nil {
			w.config.Metrics.WriterAutoFlushes.WithLabelValues(w.config.Name).Inc()
		}
		w.enqueuePending()
	}
}

// Flush enqueues the pending batch, blocking while the outstanding byte
// count exceeds MaxOutstandingBytes. A timeout <= 0 waits indefinitely.
//
// It returns (true, nil) once the batch is enqueued, (false, nil) when the
// backpressure wait timed out (the pending bytes stay intact for a retry),
// and (false, err) when the writer is closed or the sink has failed.
func (w *BufferWriter) Flush(timeout time.Duration) (bool, error) {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = gfcontext.WithTimeoutOrCancel(ctx, timeout)
		defer cancel()
	}
	return w.flush(ctx)
}

// FlushContext is Flush with cancellation. A context deadline maps to the
// timeout outcome (false, nil); cancellation returns (false, ctx.Err())
// without enqueuing.
func (w *BufferWriter) FlushContext(ctx context.Context) (bool, error) {
	return w.flush(ctx)
}

func (w *BufferWriter) flush(ctx context.Context) (bool, error) {
	if w.closed.Load() {
		return false, gferrors.ErrClosed
	}
	if len(w.pending) == 0 {
		return true, nil
	}

	ok, err := w.awaitCapacity(ctx)
	if !ok {
		return false, err
	}

	// Raise a sticky failure instead of queueing bytes the drain would
	// only discard. The gate wait may have consumed a coalesced wake-up,
	// and this path causes no further release, so pass it on for any
	// other waiter.
	if serr := w.stickyError(); serr != nil {
		w.signal.Notify()
		return false, w.wrapSinkFailure(serr)
	}

	w.enqueuePending()
	return true, nil
}

// awaitCapacity waits until the outstanding byte count is at or below the
// backpressure ceiling. The gate is checked before the new batch is added,
// so a single batch may push the count past the ceiling; the next flush
// pays for it. Returns (false, nil) when the ctx deadline passed and
// (false, err) on cancellation.
func (w *BufferWriter) awaitCapacity(ctx context.Context) (bool, error) {
	limit := int64(w.config.MaxOutstandingBytes)
	if !w.tracker.exceeds(limit) {
		return true, nil
	}

	w.statBackpressure.Add(1)
	if w.config.Metrics != nil {
		w.config.Metrics.BackpressureWaits.WithLabelValues(w.config.Name).Inc()
		start := time.Now()
		defer func() {
			w.config.Metrics.BackpressureWaitTime.WithLabelValues(w.config.Name).Observe(time.Since(start).Seconds())
		}()
	}

	for w.tracker.exceeds(limit) {
		if _, err := w.signal.WaitContext(ctx, 0); err != nil {
			if gfcontext.IsTimedOut(ctx) {
				return false, nil
			}
			return false, err
		}
	}
	return true, nil
}

// enqueuePending moves the pending buffer into the outstanding queue and
// starts a drain sequence if the writer was idle. The caller has already
// passed (or deliberately skipped) the backpressure gate.
func (w *BufferWriter) enqueuePending() {
	buf := w.pending
	w.pending = nil
	w.regionHanded = false

	n := len(buf)
	w.tracker.add(n)

	w.queueMu.Lock()
	w.queue = append(w.queue, buf)
	w.queueMu.Unlock()

	w.statFlushes.Add(1)
	w.statFlushedBytes.Add(int64(n))
	if w.config.Metrics != nil {
		w.config.Metrics.WriterFlushes.WithLabelValues(w.config.Name).Inc()
		w.config.Metrics.WriterFlushedBytes.WithLabelValues(w.config.Name).Add(float64(n))
		w.config.Metrics.WriterOutstandingBytes.WithLabelValues(w.config.Name).Set(float64(w.tracker.load()))
	}
	if w.config.OnFlush != nil {
		w.config.OnFlush(n)
	}

	if w.markPending() {
		w.drain()
	}
}

// Close flushes any pending bytes with an unbounded wait, then blocks
// until every outstanding write has completed. It returns the captured
// sink failure, wrapped, if one occurred. Close is idempotent and must
// not be called concurrently with GetBuffer or Advance.
func (w *BufferWriter) Close() error {
	return w.close(context.Background())
}

// CloseContext is Close with cancellation. On cancellation the writer
// stays closed but outstanding writes keep draining in the background.
func (w *BufferWriter) CloseContext(ctx context.Context) error {
	return w.close(ctx)
}

func (w *BufferWriter) close(ctx context.Context) error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}

	if len(w.pending) > 0 && w.stickyError() == nil {
		ok, err := w.awaitCapacity(ctx)
		if err != nil {
			w.releasePending()
			return err
		}
		if ok {
			w.enqueuePending()
		}
	}

	// A never-flushed pending buffer goes back to the pool unused.
	w.releasePending()

	for w.tracker.load() > 0 {
		if _, err := w.signal.WaitContext(ctx, 0); err != nil {
			return err
		}
	}

	// Releases coalesce into the signal's single slot, so the wait above
	// may have consumed the wake-up a concurrent Flush waiter needs. No
	// further release is coming at zero; hand the wake on.
	w.signal.Notify()

	if serr := w.stickyError(); serr != nil {
		return w.wrapSinkFailure(serr)
	}
	return nil
}

func (w *BufferWriter) releasePending() {
	if w.pending != nil {
		w.pool.Return(w.pending)
		w.pending = nil
		w.regionHanded = false
	}
}

func (w *BufferWriter) wrapSinkFailure(err error) error {
	return fmt.Errorf("bufwriter: %w: %w", gferrors.ErrSinkFailed, err)
}

func (w *BufferWriter) ensureOpen() {
	if w.closed.Load() {
		panic("bufwriter: use of closed writer")
	}
}

// IsClosed returns true if the writer has been closed.
func (w *BufferWriter) IsClosed() bool {
	return w.closed.Load()
}

// PendingBytes returns the number of committed bytes not yet flushed.
func (w *BufferWriter) PendingBytes() int {
	return len(w.pending)
}

// OutstandingBytes returns the number of bytes currently in flight.
func (w *BufferWriter) OutstandingBytes() int64 {
	return w.tracker.load()
}

// Stats returns a snapshot of the writer's activity counters.
func (w *BufferWriter) Stats() Stats {
	return Stats{
		Flushes:           w.statFlushes.Load(),
		FlushedBytes:      w.statFlushedBytes.Load(),
		AutoFlushes:       w.statAutoFlushes.Load(),
		SinkErrors:        w.statSinkErrors.Load(),
		DiscardedWrites:   w.statDiscarded.Load(),
		BackpressureWaits: w.statBackpressure.Load(),
		OutstandingBytes:  w.tracker.load(),
		PendingBytes:      len(w.pending),
	}
}
