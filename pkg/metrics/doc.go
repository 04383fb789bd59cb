/*
Package metrics provides Prometheus instrumentation for goflush components.

The Registry type holds every metric the library can report: writer flushes,
flushed bytes, backpressure waits, sink errors, discarded writes, and buffer
pool activity. Components accept a *Registry plus a name label and record
into it; passing nil disables collection entirely.

# Quick Start

	registry := prometheus.NewRegistry()
	m := metrics.NewRegistry(registry)

	w, err := bufwriter.NewWithConfig(sink, pool, bufwriter.Config{
		Metrics: m,
		Name:    "audit-log",
	})

# Default Registry

DefaultRegistry records into prometheus.DefaultRegisterer and is suitable
for applications that expose the default gatherer via promhttp.

See example tests for usage patterns.
*/
package metrics
