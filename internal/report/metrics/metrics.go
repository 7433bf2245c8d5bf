package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the report feature's Prometheus metrics.
type Metrics struct {
	ReportsCreated prometheus.Counter
	StatusUpdates  *prometheus.CounterVec
	PersistSeconds prometheus.Histogram
}

// New creates and registers all report metrics.
func New() *Metrics {
	return &Metrics{
		ReportsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusreport_reports_created_total",
			Help: "Incident reports submitted",
		}),
		StatusUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campusreport_report_status_updates_total",
			Help: "Status updates by target status",
		}, []string{"status"}),
		PersistSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusreport_report_persist_seconds",
			Help:    "Latency of report list persistence",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
