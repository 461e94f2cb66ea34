package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	registry           *prometheus.Registry
	requestsTotal      *prometheus.CounterVec
	latencySeconds     *prometheus.HistogramVec
	errorsTotal        *prometheus.CounterVec
	scoreboardDuration prometheus.Histogram
)

// RegisterMetrics initialises the collectors on the service's own registry.
// Keeping a private registry means the scrape endpoint exports exactly the
// judge metrics, free of default go/process collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		registry = prometheus.NewRegistry()

		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "judge_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "judge_request_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "judge_request_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		scoreboardDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "judge_scoreboard_compute_seconds",
			Help:    "Wall time spent computing a scoreboard from records.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		})

		registry.MustRegister(requestsTotal, latencySeconds, errorsTotal, scoreboardDuration)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// ScoreboardDuration exposes the scoreboard computation histogram.
func ScoreboardDuration() prometheus.Histogram {
	RegisterMetrics()
	return scoreboardDuration
}
