package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestShippingMetricsRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewShippingMetrics(reg)

	m.ObserveQuote("ok", 25*time.Millisecond)
	m.ObserveQuote("OK ", time.Millisecond)
	m.ObserveQuote("no_options", time.Millisecond)
	m.AddUnshippable(3)
	m.AddUnshippable(0)

	if got := testutil.ToFloat64(m.computations.WithLabelValues("ok")); got != 2 {
		t.Fatalf("expected 2 ok computations, got %v", got)
	}
	if got := testutil.ToFloat64(m.computations.WithLabelValues("no_options")); got != 1 {
		t.Fatalf("expected 1 no_options computation, got %v", got)
	}
	if got := testutil.ToFloat64(m.unshippable); got != 3 {
		t.Fatalf("expected 3 unshippable items, got %v", got)
	}
}

func TestShippingMetricsNilSafe(t *testing.T) {
	var m *ShippingMetrics
	m.ObserveQuote("ok", time.Millisecond)
	m.AddUnshippable(1)

	unregistered := NewShippingMetrics(nil)
	unregistered.ObserveQuote("ok", time.Millisecond)
	unregistered.AddUnshippable(1)
}
