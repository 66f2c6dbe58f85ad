package httpform

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcome label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics counts guarded submissions.
type Metrics struct {
	Submissions *prometheus.CounterVec
}

// NewMetrics registers the submission counter with reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		Submissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "formguard_submissions_total",
			Help: "Guarded form submissions by form and outcome",
		}, []string{"form", "outcome"}),
	}
}

// IncrementSubmission records one submission of form.
func (m *Metrics) IncrementSubmission(form, outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(form, outcome).Inc()
	}
}
