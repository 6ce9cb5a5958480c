package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShippingMetrics records shipping quote computations.
type ShippingMetrics struct {
	duration     *prometheus.HistogramVec
	computations *prometheus.CounterVec
	unshippable  prometheus.Counter
}

// NewShippingMetrics registers the shipping metrics on the provided registerer.
func NewShippingMetrics(reg prometheus.Registerer) *ShippingMetrics {
	if reg == nil {
		return &ShippingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shipping_quote_duration_seconds",
		Help:    "Duration of shipping quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_quote_total",
		Help: "Shipping quote computations by outcome.",
	}, []string{"outcome"})
	unshippable := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shipping_unshippable_items_total",
		Help: "Cart items that could not be assigned to any shipping rule.",
	})
	reg.MustRegister(duration, computations, unshippable)
	return &ShippingMetrics{
		duration:     duration,
		computations: computations,
		unshippable:  unshippable,
	}
}

// ObserveQuote records one computation with its duration.
func (m *ShippingMetrics) ObserveQuote(outcome string, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	label := normalizeLabel(outcome)
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
	m.computations.WithLabelValues(label).Inc()
}

// AddUnshippable counts items excluded from grouping.
func (m *ShippingMetrics) AddUnshippable(count int) {
	if m == nil || m.unshippable == nil || count <= 0 {
		return
	}
	m.unshippable.Add(float64(count))
}

func normalizeLabel(value string) string {
	label := strings.ToLower(strings.TrimSpace(value))
	if label == "" {
		return "unknown"
	}
	return label
}
