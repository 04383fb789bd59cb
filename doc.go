/*
Package goflush provides asynchronous buffered writing with bounded
backpressure for high-throughput producers.

Buffered Writing (pkg/streaming):
  - bufwriter: Zero-copy buffer hand-out, threshold auto-flush, and a
    single-writer drain loop feeding an asynchronous sink
  - signal: Coalescing wake-up primitive used for backpressure waits

Buffer Management (pkg/buffer):
  - pool: Tiered buffer pooling with a bytebufferpool-backed alternative

Observability (pkg/metrics):
  - Prometheus counters, gauges, and histograms for flushes, sink
    errors, backpressure waits, and pool activity

Example usage:

	import (
		"github.com/vnykmshr/goflush/pkg/buffer/pool"
		"github.com/vnykmshr/goflush/pkg/streaming/bufwriter"
	)

	w, _ := bufwriter.New(bufwriter.SinkFromWriter(os.Stdout), pool.New())

	buf := w.GetBuffer(len(record))
	w.Advance(copy(buf, record))

	if _, err := w.Flush(time.Second); err != nil {
		log.Fatal(err)
	}
	defer w.Close()
*/
package goflush
