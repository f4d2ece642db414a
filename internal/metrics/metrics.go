package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the API
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// QuoteRequests counts quote resolutions by outcome (options, empty, error)
	QuoteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "shipping_quote_requests_total", Help: "Quote resolutions by outcome."},
		[]string{"outcome"},
	)
	// QuoteOptions tracks how many options each quote request returned
	QuoteOptions = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "shipping_quote_options", Help: "Shipping options returned per quote request.", Buckets: []float64{0, 1, 2, 3, 5, 8, 13}},
	)
	// ExplainRequests counts diagnostic report generations
	ExplainRequests = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "shipping_explain_requests_total", Help: "Diagnostic explain requests."},
	)
)

// RegisterDefault registers collectors to the default registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(QuoteRequests)
		Registry.MustRegister(QuoteOptions)
		Registry.MustRegister(ExplainRequests)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
