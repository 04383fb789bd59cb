package bufwriter

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/goflush/internal/testutil"
	"github.com/vnykmshr/goflush/pkg/metrics"
)

func TestWriterMetrics(t *testing.T) {
	registry := metrics.NewRegistry(prometheus.NewRegistry())
	sink := testutil.NewMockSink()
	w, _ := newTestWriter(t, sink, Config{
		MinWriteSize:        4,
		MaxOutstandingBytes: 1 << 10,
		Metrics:             registry,
		Name:                "test",
	})

	writeBytes(t, w, []byte("12345")) // implicit flush
	writeBytes(t, w, []byte("ab"))
	ok, err := w.Flush(time.Second)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertNoError(t, w.Close())

	testutil.AssertEqual(t, promtestutil.ToFloat64(registry.WriterFlushes.WithLabelValues("test")), 2.0)
	testutil.AssertEqual(t, promtestutil.ToFloat64(registry.WriterFlushedBytes.WithLabelValues("test")), 7.0)
	testutil.AssertEqual(t, promtestutil.ToFloat64(registry.WriterAutoFlushes.WithLabelValues("test")), 1.0)
	testutil.AssertEqual(t, promtestutil.ToFloat64(registry.WriterOutstandingBytes.WithLabelValues("test")), 0.0)
	testutil.AssertEqual(t, promtestutil.ToFloat64(registry.WriterSinkErrors.WithLabelValues("test")), 0.0)
}
