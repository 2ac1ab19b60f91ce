package xtal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultMatched = "matched"
	resultCached  = "cached"
	resultUnknown = "unknown"
)

// Metrics exports validator activity to Prometheus.
// A nil *Metrics records nothing.
type Metrics struct {
	validations *prometheus.CounterVec
	searches    prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		// result is one of matched, cached (fast path hit) or unknown.
		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "xtal_validations_total",
			Help: "The total number of crystal frequency validations, by result",
		}, []string{"result"}),
		searches: factory.NewCounter(prometheus.CounterOpts{
			Name: "xtal_searches_total",
			Help: "The total number of catalog searches (validations not served from cache)",
		}),
	}

	// Pre-create every label so rate() has a series from the start.
	for _, r := range []string{resultMatched, resultCached, resultUnknown} {
		m.validations.WithLabelValues(r).Add(0)
	}
	return m
}

func (m *Metrics) observe(result string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(result).Inc()
}

func (m *Metrics) search() {
	if m == nil {
		return
	}
	m.searches.Inc()
}
