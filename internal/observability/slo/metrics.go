// Package slo tracks the service level indicators of the API over a rolling
// window of recent requests and publishes them as gauges.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Targets the gauges are compared against on the dashboards.
const (
	// AvailabilityTarget is the share of requests answered without a 5xx.
	AvailabilityTarget = 0.999

	// LatencyP95Target is the p95 latency in seconds. Validation fan-outs
	// against the reference collections dominate the write path.
	LatencyP95Target = 0.250

	// LatencyP99Target is the p99 latency in seconds.
	LatencyP99Target = 0.750

	// ErrorRateTarget is the tolerated 5xx ratio.
	ErrorRateTarget = 0.001
)

var (
	availability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_availability_ratio",
		Help: "Share of requests in the window answered without a 5xx (0-1)",
	})

	latencyP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p95_seconds",
		Help: "p95 request latency over the window in seconds",
	})

	latencyP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_latency_p99_seconds",
		Help: "p99 request latency over the window in seconds",
	})

	errorRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_error_rate_ratio",
		Help: "Share of requests in the window answered with a 5xx (0-1)",
	})

	// windowRequests exposes how many samples the gauges were computed from.
	windowRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slo_window_requests",
		Help: "Number of requests in the current SLO window",
	})
)

func publish(r Report) {
	availability.Set(r.Availability)
	errorRate.Set(r.ErrorRate)
	latencyP95.Set(r.P95.Seconds())
	latencyP99.Set(r.P99.Seconds())
	windowRequests.Set(float64(r.Requests))
}
