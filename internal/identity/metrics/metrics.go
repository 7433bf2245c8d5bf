package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the identity feature's Prometheus metrics.
type Metrics struct {
	Logins        *prometheus.CounterVec
	LoginFailures prometheus.Counter
	Registrations prometheus.Counter
	AdminsCreated prometheus.Counter
}

// New creates and registers all identity metrics.
func New() *Metrics {
	return &Metrics{
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campusreport_logins_total",
			Help: "Successful logins by role",
		}, []string{"role"}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusreport_login_failures_total",
			Help: "Rejected login attempts",
		}),
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusreport_registrations_total",
			Help: "Student registrations",
		}),
		AdminsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusreport_admins_created_total",
			Help: "Admin accounts created",
		}),
	}
}
