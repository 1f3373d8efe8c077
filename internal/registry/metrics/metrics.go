package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts registry writes by committee kind.
type Metrics struct {
	Created  *prometheus.CounterVec
	Rejected *prometheus.CounterVec
}

// New creates a new Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_committees_created_total",
			Help: "Total number of committee rows created, by kind",
		}, []string{"kind"}),
		Rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_committees_rejected_total",
			Help: "Create requests rejected by a uniqueness or parent check, by kind and reason",
		}, []string{"kind", "reason"}),
	}
}

// IncrementCreated records a successful create of the given kind.
func (m *Metrics) IncrementCreated(kind string) {
	if m != nil {
		m.Created.WithLabelValues(kind).Inc()
	}
}

// IncrementRejected records a create rejected with a conflict or missing parent.
func (m *Metrics) IncrementRejected(kind, reason string) {
	if m != nil {
		m.Rejected.WithLabelValues(kind, reason).Inc()
	}
}
