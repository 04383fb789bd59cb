/*
Package streaming holds the asynchronous writing components, providing
higher-level abstractions than standard Go writers.

This package provides two streaming components:

  - bufwriter: Buffer-oriented writer that hands out pooled regions,
    auto-flushes past a threshold, and drains to a sink asynchronously
    while bounding bytes in flight
  - signal: Coalescing one-shot notification used to park and wake
    goroutines waiting on backpressure

Basic usage:

	// Create a writer over any io.Writer sink
	w, _ := bufwriter.New(bufwriter.SinkFromWriter(out), pool.New())
	defer w.Close()

	// Fill and commit bytes without copying
	buf := w.GetBuffer(len(record))
	w.Advance(copy(buf, record))

The writer preserves submission order, surfaces sink failures as sticky
errors, and supports both timeout- and context-based waiting.
*/
package streaming
