package testutil

import (
	"bytes"
	"sync"
	"time"

	"github.com/vnykmshr/goflush/pkg/buffer/pool"
)

// MockSink is a test sink with configurable completion mode, delays, and
// error injection. It records every batch it receives.
//
// By default writes complete synchronously. SetCompleteAfter switches the
// sink to asynchronous completion after the given delay.
type MockSink struct {
	mu            sync.Mutex
	batches       [][]byte
	writeCount    int
	completeAfter time.Duration
	errorOnNth    int
	err           error
	alwaysError   bool
}

// NewMockSink creates a MockSink that completes writes synchronously.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// WriteAsync implements the bufwriter Sink contract.
func (ms *MockSink) WriteAsync(p []byte) (<-chan error, error) {
	ms.mu.Lock()
	ms.writeCount++
	batch := make([]byte, len(p))
	copy(batch, p)
	ms.batches = append(ms.batches, batch)

	var result error
	if ms.alwaysError {
		result = ms.err
	} else if ms.errorOnNth > 0 && ms.writeCount == ms.errorOnNth {
		result = ms.err
	}
	delay := ms.completeAfter
	ms.mu.Unlock()

	if delay <= 0 {
		return nil, result
	}

	done := make(chan error, 1)
	go func() {
		time.Sleep(delay)
		done <- result
	}()
	return done, nil
}

// Batches returns copies of the recorded batches in arrival order.
func (ms *MockSink) Batches() [][]byte {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([][]byte, len(ms.batches))
	copy(out, ms.batches)
	return out
}

// String returns all recorded bytes concatenated.
func (ms *MockSink) String() string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	var buf bytes.Buffer
	for _, b := range ms.batches {
		buf.Write(b)
	}
	return buf.String()
}

// WriteCount returns the number of WriteAsync calls.
func (ms *MockSink) WriteCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.writeCount
}

// SetCompleteAfter makes subsequent writes complete asynchronously after delay.
func (ms *MockSink) SetCompleteAfter(delay time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.completeAfter = delay
}

// SetErrorOnNth makes the nth write (1-based) fail with err.
func (ms *MockSink) SetErrorOnNth(n int, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.errorOnNth = n
	ms.err = err
}

// SetAlwaysError makes every write fail with err.
func (ms *MockSink) SetAlwaysError(err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.alwaysError = true
	ms.err = err
}

// ManualSink is a test sink whose writes never complete until the test
// calls Complete. Useful for holding bytes in flight deterministically.
type ManualSink struct {
	mu      sync.Mutex
	batches [][]byte
	pending []chan error
}

// NewManualSink creates a ManualSink with no writes in flight.
func NewManualSink() *ManualSink {
	return &ManualSink{}
}

// WriteAsync implements the bufwriter Sink contract. The write stays in
// flight until Complete is called.
func (ms *ManualSink) WriteAsync(p []byte) (<-chan error, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	batch := make([]byte, len(p))
	copy(batch, p)
	ms.batches = append(ms.batches, batch)

	done := make(chan error, 1)
	ms.pending = append(ms.pending, done)
	return done, nil
}

// Complete finishes the oldest in-flight write with the given result.
// It reports whether a write was in flight.
func (ms *ManualSink) Complete(err error) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if len(ms.pending) == 0 {
		return false
	}
	done := ms.pending[0]
	ms.pending = ms.pending[1:]
	done <- err
	return true
}

// CompleteAll finishes every in-flight write with the given result.
func (ms *ManualSink) CompleteAll(err error) {
	for ms.Complete(err) {
	}
}

// InFlight returns the number of writes awaiting completion.
func (ms *ManualSink) InFlight() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.pending)
}

// Batches returns copies of the recorded batches in arrival order.
func (ms *ManualSink) Batches() [][]byte {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([][]byte, len(ms.batches))
	copy(out, ms.batches)
	return out
}

// RecordingPool wraps a Pool and counts rents and returns, letting tests
// assert the exactly-once buffer release discipline.
type RecordingPool struct {
	inner   pool.Pool
	mu      sync.Mutex
	rents   int
	returns int
}

// NewRecordingPool wraps the given pool. If inner is nil, a default tiered
// pool is used.
func NewRecordingPool(inner pool.Pool) *RecordingPool {
	if inner == nil {
		inner = pool.New()
	}
	return &RecordingPool{inner: inner}
}

// Rent implements pool.Pool.
func (rp *RecordingPool) Rent(minSize int) []byte {
	rp.mu.Lock()
	rp.rents++
	rp.mu.Unlock()
	return rp.inner.Rent(minSize)
}

// Return implements pool.Pool.
func (rp *RecordingPool) Return(buf []byte) {
	rp.mu.Lock()
	rp.returns++
	rp.mu.Unlock()
	rp.inner.Return(buf)
}

// Rents returns the number of Rent calls.
func (rp *RecordingPool) Rents() int {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.rents
}

// Returns returns the number of Return calls.
func (rp *RecordingPool) Returns() int {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.returns
}

// Outstanding returns rents minus returns.
func (rp *RecordingPool) Outstanding() int {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	return rp.rents - rp.returns
}
