package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	estimatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shardcost",
			Name:      "estimates_total",
			Help:      "Cost estimates computed, by operator kind",
		},
		[]string{"operator"},
	)

	estimateFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shardcost",
			Name:      "estimate_failures_total",
			Help:      "Cost estimates rejected, by operator kind",
		},
		[]string{"operator"},
	)
)

// RegisterEstimateMetrics registers the estimate counters. Called once from
// the composition root; no init() so tests can skip registration.
func RegisterEstimateMetrics() {
	prometheus.MustRegister(estimatesTotal)
	prometheus.MustRegister(estimateFailuresTotal)
}

// ObserveEstimate counts one computed estimate for an operator kind.
func ObserveEstimate(operator string) {
	estimatesTotal.WithLabelValues(operator).Inc()
}

// ObserveEstimateFailure counts one rejected estimate for an operator kind.
func ObserveEstimateFailure(operator string) {
	estimateFailuresTotal.WithLabelValues(operator).Inc()
}
