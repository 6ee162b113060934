package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/richxcame/ridematch/pkg/logger"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when the breaker refuses a request because it is open.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Operation represents a call wrapped by the circuit breaker.
type Operation func(ctx context.Context) (interface{}, error)

// Settings defines runtime options for the circuit breaker.
type Settings struct {
	Name             string
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	SuccessThreshold uint32
	// Benign errors are returned to the caller but do not count as failures.
	Benign []error
}

// CircuitBreaker wraps gobreaker with logging and prometheus instrumentation.
type CircuitBreaker struct {
	name    string
	benign  []error
	breaker *gobreaker.CircuitBreaker
}

// NewCircuitBreaker constructs a breaker that trips after FailureThreshold consecutive failures.
func NewCircuitBreaker(settings Settings) *CircuitBreaker {
	name := breakerName(settings.Name)

	readyToTrip := func(counts gobreaker.Counts) bool {
		threshold := settings.FailureThreshold
		if threshold == 0 {
			threshold = 5
		}
		return counts.ConsecutiveFailures >= threshold
	}

	breakerSettings := gobreaker.Settings{
		Name:        name,
		Timeout:     settings.Timeout,
		Interval:    settings.Interval,
		ReadyToTrip: readyToTrip,
		OnStateChange: func(name string, from, to gobreaker.State) {
			recordTransition(name, from, to)
			logger.Get().Info("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	cb := &CircuitBreaker{
		name:   name,
		benign: settings.Benign,
	}

	if len(settings.Benign) > 0 {
		breakerSettings.IsSuccessful = func(err error) bool {
			return err == nil || cb.isBenign(err)
		}
	}

	if settings.SuccessThreshold > 0 {
		breakerSettings.MaxRequests = settings.SuccessThreshold
	}

	cb.breaker = gobreaker.NewCircuitBreaker(breakerSettings)
	setBreakerState(name, gobreaker.StateClosed)
	return cb
}

// Name returns the breaker name used in logs and metrics.
func (c *CircuitBreaker) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Execute runs the supplied operation through the breaker.
// A nil breaker runs the operation directly.
func (c *CircuitBreaker) Execute(ctx context.Context, operation Operation) (interface{}, error) {
	if operation == nil {
		return nil, errors.New("operation cannot be nil")
	}

	if c == nil || c.breaker == nil {
		return operation(ctx)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return operation(ctx)
	})
	switch {
	case err == nil:
		recordCall(c.name, "ok")
		return result, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		recordCall(c.name, "rejected")
		return nil, ErrCircuitOpen
	case c.isBenign(err):
		recordCall(c.name, "benign")
	default:
		recordCall(c.name, "failure")
	}
	return result, err
}

func (c *CircuitBreaker) isBenign(err error) bool {
	for _, b := range c.benign {
		if errors.Is(err, b) {
			return true
		}
	}
	return false
}

// Allow reports whether the breaker would allow a request without executing it.
func (c *CircuitBreaker) Allow() bool {
	if c == nil || c.breaker == nil {
		return true
	}
	return c.breaker.State() != gobreaker.StateOpen
}

// State returns the breaker state as "closed", "half-open" or "open".
func (c *CircuitBreaker) State() string {
	if c == nil || c.breaker == nil {
		return gobreaker.StateClosed.String()
	}
	return c.breaker.State().String()
}
