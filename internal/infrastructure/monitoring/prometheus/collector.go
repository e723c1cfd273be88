// Package prometheus provides metrics registration and the /metrics handler
// for the casetrace analysis service.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's metric registry.  A single Collector is created
// during bootstrap and shared by every instrumented component.
type Collector struct {
	registry *prometheus.Registry
}

// NewCollector constructs a Collector with the standard Go runtime and process
// collectors pre-registered.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Collector{registry: reg}
}

// Registerer exposes the underlying registerer for metric construction.
func (c *Collector) Registerer() prometheus.Registerer {
	return c.registry
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
