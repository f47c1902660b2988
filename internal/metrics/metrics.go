// Package metrics exposes Prometheus instrumentation for the relay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the relay.
type Metrics struct {
	// HTTP request metrics
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Sponsorship outcome metrics, labelled by contract method
	SponsorshipsTotal   *prometheus.CounterVec
	SponsorshipsSuccess *prometheus.CounterVec
	SponsorshipsFail    *prometheus.CounterVec
}

// New initializes and registers metrics on the default registerer.
func New() *Metrics {
	return NewWithRegistry(nil)
}

// NewWithRegistry initializes and registers metrics with a custom
// registry, which tests use to avoid duplicate-registration panics.
func NewWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nerofit_relay_requests_total",
			Help: "The total number of HTTP requests served, by path and status code",
		}, []string{"path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nerofit_relay_request_duration_seconds",
			Help:    "End-to-end request latency, by path",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		SponsorshipsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nerofit_relay_sponsorships_total",
			Help: "The total number of sponsorship attempts, by contract method",
		}, []string{"method"}),
		SponsorshipsSuccess: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nerofit_relay_sponsorships_success_total",
			Help: "The total number of sponsorships granted by the paymaster, by contract method",
		}, []string{"method"}),
		SponsorshipsFail: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nerofit_relay_sponsorships_fail_total",
			Help: "The total number of failed sponsorship attempts, by contract method",
		}, []string{"method"}),
	}
}
