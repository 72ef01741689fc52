package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts scheduling and delivery results. A nil *Metrics records
// nothing.
type Metrics struct {
	scheduled *prometheus.CounterVec
	delivered *prometheus.CounterVec
}

// NewMetrics registers the reminder counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		scheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hp_reminders_total",
				Help: "Reminder scheduling attempts by outcome",
			},
			[]string{"outcome"},
		),
		delivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hp_reminder_deliveries_total",
				Help: "Reminder deliveries by deliverer and result",
			},
			[]string{"deliverer", "result"},
		),
	}
}

func (m *Metrics) observe(o Outcome) {
	if m == nil {
		return
	}
	m.scheduled.WithLabelValues(string(o)).Inc()
}

func (m *Metrics) delivery(deliverer string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.delivered.WithLabelValues(deliverer, result).Inc()
}
