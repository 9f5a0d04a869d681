package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vizreport", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vizreport", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)

	// VisualizationOps counts resource manager operations by outcome
	// (ok, invalid, not_found, storage_error).
	VisualizationOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vizreport", Name: "visualization_operations_total", Help: "Visualization operations by operation and outcome."},
		[]string{"op", "outcome"},
	)
	VisualizationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "vizreport", Name: "visualization_operation_duration_seconds", Help: "Visualization operation latency.", Buckets: prometheus.DefBuckets},
		[]string{"op"},
	)
	ReportsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vizreport", Name: "reports_rendered_total", Help: "PDF reports rendered by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(VisualizationOps)
	reg.MustRegister(VisualizationDuration)
	reg.MustRegister(ReportsRendered)
}
