package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeLocked  = "locked"
)

// Metrics provides observability for logins and registrations.
type Metrics struct {
	LoginAttempts   *prometheus.CounterVec
	UsersRegistered *prometheus.CounterVec
}

// New creates a new Metrics instance with all auth metrics registered.
func New() *Metrics {
	return &Metrics{
		LoginAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		UsersRegistered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_users_registered_total",
			Help: "User accounts created, by role",
		}, []string{"role_type"}),
	}
}

func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementRegistered(roleType string) {
	if m != nil {
		m.UsersRegistered.WithLabelValues(roleType).Inc()
	}
}
