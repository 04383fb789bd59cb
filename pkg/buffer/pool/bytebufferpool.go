package pool

import (
	"github.com/valyala/bytebufferpool"
)

// byteBufferPool adapts valyala/bytebufferpool to the Pool interface.
// The underlying pool self-calibrates buffer capacities to the workload,
// so there are no fixed size classes.
type byteBufferPool struct{}

// NewByteBufferPool creates a Pool backed by github.com/valyala/bytebufferpool.
func NewByteBufferPool() Pool {
	return byteBufferPool{}
}

// Rent implements Pool.Rent.
func (byteBufferPool) Rent(minSize int) []byte {
	bb := bytebufferpool.Get()
	buf := bb.B
	bb.B = nil
	bytebufferpool.Put(bb)

	if cap(buf) < minSize {
		buf = make([]byte, 0, minSize)
	}
	return buf[:0]
}

// Return implements Pool.Return.
func (byteBufferPool) Return(buf []byte) {
	if buf == nil {
		return
	}
	bytebufferpool.Put(&bytebufferpool.ByteBuffer{B: buf})
}
