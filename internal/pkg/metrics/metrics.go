// Package metrics holds the Prometheus instruments used across the API and
// the gateway.  Collectors are registered with the default registry, which
// is what /metrics exposes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roilux_submissions_total",
			Help: "Public submissions by kind (contact, tour) and result.",
		}, []string{"kind", "result"})

	ReviewActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roilux_review_actions_total",
			Help: "Review actions by kind, action (archive, delete) and result.",
		}, []string{"kind", "action", "result"})

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roilux_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"})

	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roilux_uploads_total",
			Help: "Media uploads by kind (image, video) and result.",
		}, []string{"kind", "result"})

	StoreSavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roilux_store_saves_total",
			Help: "JSON document writes by result.",
		}, []string{"result"})

	BackendUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "roilux_gateway_backend_up",
			Help: "1 when the last gateway liveness probe reached the API backend.",
		})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ReviewActionsTotal,
		LoginsTotal,
		UploadsTotal,
		StoreSavesTotal,
		BackendUp,
	)
}

// Result labels a counter increment from an error
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
