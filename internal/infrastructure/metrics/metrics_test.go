package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveDecision("check", "approved")
	m.ObserveDecision("check", "approved")
	m.ObserveDecision("create", "credit_score_too_low")
	m.ObserveFallback("customer_not_found")
	m.ObserveScore(63.5)
	m.IncrementLoansCreated()

	if got := testutil.ToFloat64(m.Decisions.WithLabelValues("check", "approved")); got != 2 {
		t.Fatalf("check/approved = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Decisions.WithLabelValues("create", "credit_score_too_low")); got != 1 {
		t.Fatalf("create/credit_score_too_low = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ScoreFallbacks.WithLabelValues("customer_not_found")); got != 1 {
		t.Fatalf("fallbacks = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LoansCreated); got != 1 {
		t.Fatalf("loans created = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.Scores); n != 1 {
		t.Fatalf("score histogram series = %d, want 1", n)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveDecision("check", "approved")
	m.ObserveFallback("x")
	m.ObserveScore(1)
	m.IncrementLoansCreated()
}
