package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSale    = "sale"
	OutcomeNoSale  = "no_sale"
	defaultOutcome = "unknown"
)

// CheckoutMetrics records checkout outcomes and sale sizes.
type CheckoutMetrics struct {
	checkouts  *prometheus.CounterVec
	invalidIDs prometheus.Counter
	saleTotal  prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkouts_total",
		Help: "Checkouts processed, by outcome.",
	}, []string{"outcome"})
	invalidIDs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_invalid_ids_total",
		Help: "Product identifiers that did not resolve during checkout.",
	})
	saleTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sale_total_amount",
		Help:    "Sale totals in currency units.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})
	reg.MustRegister(checkouts, invalidIDs, saleTotal)
	return &CheckoutMetrics{
		checkouts:  checkouts,
		invalidIDs: invalidIDs,
		saleTotal:  saleTotal,
	}
}

// ObserveCheckout records one finished checkout.
func (c *CheckoutMetrics) ObserveCheckout(outcome string, invalid int, total float64) {
	if c == nil || c.checkouts == nil {
		return
	}
	c.checkouts.WithLabelValues(normalizeLabel(outcome)).Inc()
	if invalid > 0 {
		c.invalidIDs.Add(float64(invalid))
	}
	if outcome == OutcomeSale {
		c.saleTotal.Observe(total)
	}
}

func normalizeLabel(label string) string {
	if label == "" {
		return defaultOutcome
	}
	return label
}
