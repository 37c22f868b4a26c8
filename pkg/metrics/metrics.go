// Package metrics exposes the Prometheus instruments of the matching
// service. All collectors are registered on the default registry and
// served from the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clover",
		Name:      "match_requests_total",
		Help:      "Match computations by side and outcome.",
	}, []string{"side", "status"})

	matchDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clover",
		Name:      "match_duration_seconds",
		Help:      "End to end duration of a match computation.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"side"})

	matchCandidates = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clover",
		Name:      "match_candidates",
		Help:      "Number of candidates scored per match computation.",
		Buckets:   []float64{0, 5, 10, 25, 50, 100, 200},
	}, []string{"side"})

	fallbackActivationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clover",
		Name:      "fallback_activations_total",
		Help:      "Times the demo dataset was served because the store was unreachable.",
	})

	preferenceUpsertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clover",
		Name:      "preference_upserts_total",
		Help:      "Preference writes by user type and outcome.",
	}, []string{"user_type", "status"})

	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clover",
		Name:      "cache_lookups_total",
		Help:      "Match response cache lookups by result.",
	}, []string{"result"})
)

// RecordMatchRequest records one match computation.
func RecordMatchRequest(side, status string, durationSeconds float64, candidates int) {
	matchRequestsTotal.WithLabelValues(side, status).Inc()
	matchDurationSeconds.WithLabelValues(side).Observe(durationSeconds)
	matchCandidates.WithLabelValues(side).Observe(float64(candidates))
}

// RecordFallback records one activation of the demo dataset.
func RecordFallback() {
	fallbackActivationsTotal.Inc()
}

// RecordPreferenceUpsert records one preference write.
func RecordPreferenceUpsert(userType, status string) {
	preferenceUpsertsTotal.WithLabelValues(userType, status).Inc()
}

// RecordCacheLookup records one cache probe; result is "hit" or "miss".
func RecordCacheLookup(result string) {
	cacheLookupsTotal.WithLabelValues(result).Inc()
}
