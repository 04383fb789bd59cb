package metrics_test

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goflush/pkg/metrics"
)

// Example demonstrates creating an isolated metrics registry.
func Example() {
	// Use a private registry to avoid polluting the default gatherer.
	registry := prometheus.NewRegistry()
	m := metrics.NewRegistry(registry)

	// Components record into the registry through their Config.
	m.WriterFlushes.WithLabelValues("example").Inc()
	m.WriterFlushedBytes.WithLabelValues("example").Add(4096)

	families, _ := registry.Gather()
	fmt.Println(len(families) > 0)
	// Output: true
}
