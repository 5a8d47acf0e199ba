// Package metrics exposes Prometheus collectors for the digest service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	digestComputationsTotal    *prometheus.CounterVec
	digestMessageBytesTotal    *prometheus.CounterVec
	digestDurationSeconds      *prometheus.HistogramVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Status labels for ObserveDigest.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		digestComputationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digest_computations_total",
				Help: "Total number of SHA-256 digests computed, labeled by source and status.",
			},
			[]string{"source", "status"},
		)

		digestMessageBytesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digest_message_bytes_total",
				Help: "Total number of message bytes hashed, labeled by source.",
			},
			[]string{"source"},
		)

		digestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "digest_duration_seconds",
				Help:    "Histogram of single digest computation latencies, labeled by source.",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10},
			},
			[]string{"source"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveDigest records one digest computation.
func ObserveDigest(source, status string, messageBytes int, duration time.Duration) {
	Init()
	digestComputationsTotal.WithLabelValues(source, status).Inc()
	if status != StatusOK {
		return
	}
	if messageBytes > 0 {
		digestMessageBytesTotal.WithLabelValues(source).Add(float64(messageBytes))
	}
	digestDurationSeconds.WithLabelValues(source).Observe(duration.Seconds())
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
