package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCheckoutMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.ObserveCheckout(OutcomeSale, 1, 20)
	m.ObserveCheckout(OutcomeNoSale, 2, 0)
	m.ObserveCheckout("", 0, 0)

	if got := testutil.ToFloat64(m.checkouts.WithLabelValues(OutcomeSale)); got != 1 {
		t.Fatalf("expected 1 sale, got %v", got)
	}
	if got := testutil.ToFloat64(m.checkouts.WithLabelValues(OutcomeNoSale)); got != 1 {
		t.Fatalf("expected 1 no-sale, got %v", got)
	}
	if got := testutil.ToFloat64(m.checkouts.WithLabelValues(defaultOutcome)); got != 1 {
		t.Fatalf("expected unlabelled outcome under unknown, got %v", got)
	}
	if got := testutil.ToFloat64(m.invalidIDs); got != 3 {
		t.Fatalf("expected 3 invalid ids, got %v", got)
	}
	if got := testutil.CollectAndCount(m.saleTotal); got != 1 {
		t.Fatalf("expected histogram collected, got %d", got)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	m := NewCheckoutMetrics(nil)
	m.ObserveCheckout(OutcomeSale, 1, 5)

	var nilMetrics *CheckoutMetrics
	nilMetrics.ObserveCheckout(OutcomeSale, 1, 5)
}
