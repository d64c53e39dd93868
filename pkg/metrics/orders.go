package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records submit outcomes and price resolution activity.
type OrderMetrics struct {
	submits        *prometheus.CounterVec
	submitDuration prometheus.Histogram
	resolutions    *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	submits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submits_total",
		Help: "Order submit attempts by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_submit_duration_seconds",
		Help:    "Duration of order submit requests in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	resolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_resolutions_total",
		Help: "Effective price resolutions by winning source.",
	}, []string{"source"})
	reg.MustRegister(submits, duration, resolutions)
	return &OrderMetrics{
		submits:        submits,
		submitDuration: duration,
		resolutions:    resolutions,
	}
}

// ObserveSubmit records one submit attempt with its outcome and duration.
func (m *OrderMetrics) ObserveSubmit(outcome string, duration time.Duration) {
	if m == nil || m.submits == nil {
		return
	}
	m.submits.WithLabelValues(outcome).Inc()
	m.submitDuration.Observe(duration.Seconds())
}

// IncResolution counts one price resolution by its winning source.
func (m *OrderMetrics) IncResolution(source string) {
	if m == nil || m.resolutions == nil {
		return
	}
	m.resolutions.WithLabelValues(source).Inc()
}
