package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "playground"

var (
	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Submission attempts by network and final status.",
	}, []string{"network", "status"})

	SubmissionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "submission_duration_seconds",
		Help:      "Time spent waiting on the wallet capability.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9),
	}, []string{"network"})

	CompiledCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compiled_calls_total",
		Help:      "Calls produced by the call compiler, by mode.",
	}, []string{"mode"})

	BalanceFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "balance_fetches_total",
		Help:      "Balance fetch cycles by network and outcome (ok, error, stale).",
	}, []string{"network", "outcome"})

	BalanceFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "balance_fetch_duration_seconds",
		Help:      "Duration of the concurrent balance and price fetch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network"})

	PriceLookupFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_lookup_failures_total",
		Help:      "Price lookups that failed and were ignored.",
	})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"method", "route", "code"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			SubmissionsTotal,
			SubmissionDuration,
			CompiledCalls,
			BalanceFetchesTotal,
			BalanceFetchDuration,
			PriceLookupFailures,
			HTTPRequests,
		)
	})
}
