package resilience

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

const metricsNamespace = "ridematch"

var (
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "breaker",
		Name:      "state",
		Help:      "Breaker state per search dependency (0=closed, 0.5=half-open, 1=open)",
	}, []string{"breaker"})

	breakerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "breaker",
		Name:      "calls_total",
		Help:      "Calls seen by a breaker, by outcome (ok, benign, failure, rejected)",
	}, []string{"breaker", "outcome"})

	breakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "breaker",
		Name:      "transitions_total",
		Help:      "Breaker state transitions",
	}, []string{"breaker", "from", "to"})

	retryAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "retry",
		Name:      "attempts_total",
		Help:      "Individual attempts made under a retry policy",
	}, []string{"operation", "result"})

	retryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "retry",
		Name:      "duration_seconds",
		Help:      "Wall time of a retried operation including backoff",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"operation", "result"})

	retryAttemptsUsed = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "retry",
		Name:      "attempts_used",
		Help:      "Attempts consumed before success or giving up",
		Buckets:   []float64{1, 2, 3, 4, 5},
	}, []string{"operation", "result"})

	retryBackoff = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "retry",
		Name:      "backoff_seconds",
		Help:      "Backoff waited between attempts",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 8),
	}, []string{"operation"})

	breakerSeq uint64
)

func breakerName(base string) string {
	if base != "" {
		return base
	}
	return "breaker-" + strconv.FormatUint(atomic.AddUint64(&breakerSeq, 1), 10)
}

func stateGaugeValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 0.5
	case gobreaker.StateOpen:
		return 1
	}
	return -1
}

func setBreakerState(name string, state gobreaker.State) {
	breakerState.WithLabelValues(name).Set(stateGaugeValue(state))
}

func recordTransition(name string, from, to gobreaker.State) {
	breakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
	setBreakerState(name, to)
}

func recordCall(name, outcome string) {
	breakerCalls.WithLabelValues(name, outcome).Inc()
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func recordRetryAttempt(operation string, ok bool) {
	retryAttempts.WithLabelValues(operation, resultLabel(ok)).Inc()
}

func recordRetryOutcome(operation string, elapsed time.Duration, attempts int, ok bool) {
	label := resultLabel(ok)
	retryDuration.WithLabelValues(operation, label).Observe(elapsed.Seconds())
	retryAttemptsUsed.WithLabelValues(operation, label).Observe(float64(attempts))
}

func recordRetryBackoff(operation string, wait time.Duration) {
	retryBackoff.WithLabelValues(operation).Observe(wait.Seconds())
}
