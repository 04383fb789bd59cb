package bufwriter

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/vnykmshr/goflush/internal/testutil"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

type failingWriter struct{ err error }

func (fw failingWriter) Write([]byte) (int, error) {
	return 0, fw.err
}

func TestSinkFromWriter(t *testing.T) {
	var buf bytes.Buffer
	sink := SinkFromWriter(&buf)

	done, err := sink.WriteAsync([]byte("payload"))
	testutil.AssertEqual(t, done == nil, true)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, buf.String(), "payload")
}

func TestSinkFromWriterShortWrite(t *testing.T) {
	sink := SinkFromWriter(shortWriter{})

	done, err := sink.WriteAsync([]byte("payload"))
	testutil.AssertEqual(t, done == nil, true)
	testutil.AssertEqual(t, errors.Is(err, io.ErrShortWrite), true)
}

func TestSinkFromWriterError(t *testing.T) {
	boom := errors.New("disk full")
	sink := SinkFromWriter(failingWriter{err: boom})

	done, err := sink.WriteAsync([]byte("payload"))
	testutil.AssertEqual(t, done == nil, true)
	testutil.AssertEqual(t, errors.Is(err, boom), true)
}
