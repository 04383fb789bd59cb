package bufwriter

import (
	"io"
	"sync"
)

// Sink is the downstream consumer of flushed byte batches. Implementations
// may complete a write on the calling stack or hand it off.
type Sink interface {
	// WriteAsync begins writing p. A nil done channel means the write
	// completed synchronously and err holds its result. Otherwise done
	// receives exactly one result when the write finishes, and err is nil.
	//
	// The batch p is owned by the sink only for the duration of the write;
	// implementations must not retain it after signaling completion.
	WriteAsync(p []byte) (done <-chan error, err error)
}

// writerSink adapts a synchronous io.Writer to the Sink contract. Every
// write completes on the calling stack, so the writer's fast path applies.
type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

// SinkFromWriter wraps an io.Writer as a Sink. The wrapper serializes
// writes, so w itself does not need to be safe for concurrent use.
func SinkFromWriter(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) WriteAsync(p []byte) (<-chan error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return nil, err
}
