// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanos_api_requests_total",
			Help: "Total number of requests sent to the loan service",
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loanos_api_request_duration_seconds",
			Help:    "Duration of loan service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	APIRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "loanos_api_requests_in_flight",
			Help: "Number of loan service requests currently in flight",
		},
		[]string{"endpoint"},
	)

	WorkflowActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanos_workflow_actions_total",
			Help: "Total number of admin workflow actions triggered",
		},
		[]string{"action", "outcome"},
	)

	GuardRedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loanos_guard_redirects_total",
			Help: "Total number of redirects issued by route guards",
		},
		[]string{"guard", "target"},
	)
)
