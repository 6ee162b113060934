package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const strategyNone = "none"

var (
	searchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ride_search_requests_total",
		Help: "Ride searches by the strategy that produced the results",
	}, []string{"strategy"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ride_search_duration_seconds",
		Help:    "End-to-end ride search latency",
		Buckets: prometheus.DefBuckets,
	})

	searchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ride_search_results",
		Help:    "Number of rides returned per search",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200},
	})

	tierAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ride_search_tier_attempts_total",
		Help: "Search tier attempts by outcome",
	}, []string{"strategy", "outcome"})

	tierDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ride_search_tier_duration_seconds",
		Help:    "Search tier latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})
)

func recordSearch(strategy string, results int, elapsed time.Duration) {
	searchRequestsTotal.WithLabelValues(strategy).Inc()
	searchDuration.Observe(elapsed.Seconds())
	searchResults.Observe(float64(results))
}

func recordTier(strategy, outcome string, elapsed time.Duration) {
	tierAttemptsTotal.WithLabelValues(strategy, outcome).Inc()
	tierDuration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}
