package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for credit decisions.
// A nil *Metrics records nothing.
type Metrics struct {
	Decisions      *prometheus.CounterVec
	ScoreFallbacks *prometheus.CounterVec
	Scores         prometheus.Histogram
	LoansCreated   prometheus.Counter
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_decisions_total",
			Help: "Eligibility decisions by operation and outcome",
		}, []string{"operation", "outcome"}),
		ScoreFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_score_fallbacks_total",
			Help: "Scores replaced by 0 because the score could not be computed",
		}, []string{"reason"}),
		Scores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "credit_score_value",
			Help:    "Distribution of computed credit scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		LoansCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "credit_loans_created_total",
			Help: "Loans persisted after approval",
		}),
	}
}

// ObserveDecision records one eligibility outcome, e.g. ("check", "approved").
func (m *Metrics) ObserveDecision(operation, outcome string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveFallback(reason string) {
	if m == nil {
		return
	}
	m.ScoreFallbacks.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveScore(score float64) {
	if m == nil {
		return
	}
	m.Scores.Observe(score)
}

func (m *Metrics) IncrementLoansCreated() {
	if m == nil {
		return
	}
	m.LoansCreated.Inc()
}
