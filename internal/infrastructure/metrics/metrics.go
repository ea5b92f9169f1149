package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewCounter registers the service counter vec on the default registry.
// Label values used: app_requests_total, user_created_total, user_updated_total,
// user_deleted_total, photo_stored_total, photo_rejected_total.
func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "userprofile",
			Name:      "general_counters",
		},
		[]string{"result"})
}
