// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the giftwish backend.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts all HTTP requests by method, route pattern, and
	// status code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftwish_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method
	// and route pattern.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "giftwish_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthFailuresTotal counts requests rejected by the authentication
	// gates, by gate.
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "giftwish_auth_failures_total",
			Help: "Gate rejections",
		},
		[]string{"gate"},
	)
)

// Register adds all metrics to the given registry. Pass a fresh registry in
// tests to avoid duplicate-registration panics.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(RequestsTotal, RequestDuration, AuthFailuresTotal)
}

// Handler returns the /metrics endpoint handler for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
