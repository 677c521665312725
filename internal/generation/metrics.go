package generation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"studybuddy/internal/prompt"
)

const (
	outcomeSuccess      = "success"
	outcomeModelError   = "model_error"
	outcomeInvalidReply = "invalid_reply"
	outcomeTimeout      = "timeout"
	outcomeCanceled     = "canceled"
)

// Metrics records generation outcomes and latency.
type Metrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the generation metrics on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studybuddy_generation_total",
				Help: "Structured generation calls by task and outcome.",
			},
			[]string{"task", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studybuddy_generation_duration_seconds",
				Help:    "Structured generation latency including re-prompts.",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 45, 60},
			},
			[]string{"task"},
		),
	}
	for _, c := range []prometheus.Collector{m.total, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(kind prompt.Kind, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.total.WithLabelValues(string(kind), outcome).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}
