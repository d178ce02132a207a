package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// EngineMetrics holds the instrumentation for the HTTP surface and the
// checkout path.
type EngineMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
	Checkouts *prometheus.CounterVec
}

func NewEngineMetrics() *EngineMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: "engine",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pos",
		Subsystem: "engine",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"handler"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: "engine",
		Name:      "checkouts_total",
		Help:      "Total number of committed sales by payment method.",
	}, []string{"method"})

	prometheus.MustRegister(requests, latency, checkouts)
	return &EngineMetrics{Requests: requests, LatencyMS: latency, Checkouts: checkouts}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
