/*
Package pool provides reusable byte buffer pools for goflush writers.

A Pool hands out byte slices with zero length and at least the requested
capacity, and takes them back when the writer is done with them. Pooling
removes the per-batch allocation from the hot write path and keeps GC
pressure flat under sustained throughput.

# Quick Start

	p := pool.New()

	buf := p.Rent(4096)
	// ... fill buf ...
	p.Return(buf)

# Implementations

New returns a tiered sync.Pool implementation with small, medium, and
large size classes. Rents larger than the large class fall through to a
plain allocation and are not pooled, so a single huge write cannot pin
memory indefinitely.

NewByteBufferPool returns an implementation backed by
github.com/valyala/bytebufferpool, which self-calibrates its buffer sizes
to the observed workload.

# Thread Safety

All implementations are safe for concurrent use.
*/
package pool
