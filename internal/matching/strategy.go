package matching

import (
	"context"
	"errors"

	"github.com/richxcame/ridematch/pkg/resilience"
)

// Strategy names
const (
	StrategySmartFunction = "smart_function"
	StrategyProvinceSQL   = "province_sql"
	StrategyInMemory      = "in_memory"
	StrategySort          = "sort"
)

// ErrEmptyResult is returned by a strategy that ran successfully but found nothing.
var ErrEmptyResult = errors.New("strategy returned no results")

// Strategy is one search backend. Attempt returns ErrEmptyResult rather than
// an empty slice when nothing matches.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, q Query) ([]MatchResult, error)
}

// Tier is a strategy and the breaker guarding it. A nil breaker runs the
// strategy unguarded.
type Tier struct {
	Strategy Strategy
	Breaker  *resilience.CircuitBreaker
}
