package server

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the counters exported on /metrics.
type Metrics struct {
	Calculations       *prometheus.CounterVec
	Conversions        *prometheus.CounterVec
	ValidationFailures prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pumpcarbon_calculations_total",
			Help: "Completed pump calculations by variant.",
		}, []string{"variant"}),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pumpcarbon_conversions_total",
			Help: "Unit table lookups from the convert endpoint and scenario builds, by outcome (converted or pass_through).",
		}, []string{"status"}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pumpcarbon_validation_failures_total",
			Help: "Scenarios rejected before or during calculation.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pumpcarbon_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.Calculations, m.Conversions, m.ValidationFailures, m.RequestDuration)
	return m
}
