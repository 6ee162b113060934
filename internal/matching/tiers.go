package matching

import (
	"context"
	"fmt"
	"math"

	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/pkg/resilience"
)

// SmartFunctionStrategy asks the database ranking function for matches.
type SmartFunctionStrategy struct {
	repo RideRepository
}

// NewSmartFunctionStrategy creates the first search tier
func NewSmartFunctionStrategy(repo RideRepository) *SmartFunctionStrategy {
	return &SmartFunctionStrategy{repo: repo}
}

func (s *SmartFunctionStrategy) Name() string { return StrategySmartFunction }

func (s *SmartFunctionStrategy) Attempt(ctx context.Context, q Query) ([]MatchResult, error) {
	from, to := geography.Normalize(q.From), geography.Normalize(q.To)
	if from == "" && to == "" {
		return nil, ErrEmptyResult
	}

	rows, err := s.repo.SearchSmart(ctx, from, to, q.RadiusKm, q.MaxResults)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyResult
	}

	out := make([]MatchResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, smartRowResult(row))
	}
	return out, nil
}

// smartRowResult converts a ranking function row. The server direction score
// wins when positive; otherwise a positive distance to the searched city
// decides. Zero or missing values leave the neutral 50.
func smartRowResult(row SmartRideRow) MatchResult {
	score := 50
	switch {
	case row.DirectionScore != nil && *row.DirectionScore > 0:
		score = *row.DirectionScore
	case row.DistanceFromCityKm != nil && *row.DistanceFromCityKm > 0:
		score = int(math.Round(math.Max(0, 100-2*(*row.DistanceFromCityKm))))
	}
	score = clampScore(score)

	matchType, ok := ParseMatchType(row.MatchType)
	if !ok {
		matchType = ProximityMatch
	}

	description := fmt.Sprintf("%s • %dpts • %s → %s", matchType, score, row.FromAddress, row.ToAddress)
	result := newScoreResult(score, matchType, description)
	return newMatchResult(row.Ride, result, StrategySmartFunction)
}

// ProvinceSQLStrategy matches rides on stored endpoint provinces.
type ProvinceSQLStrategy struct {
	repo RideRepository
}

// NewProvinceSQLStrategy creates the second search tier
func NewProvinceSQLStrategy(repo RideRepository) *ProvinceSQLStrategy {
	return &ProvinceSQLStrategy{repo: repo}
}

func (s *ProvinceSQLStrategy) Name() string { return StrategyProvinceSQL }

func (s *ProvinceSQLStrategy) Attempt(ctx context.Context, q Query) ([]MatchResult, error) {
	if !q.FromProvince.IsKnown() && !q.ToProvince.IsKnown() {
		return nil, ErrEmptyResult
	}

	rows, err := s.repo.SearchByProvince(ctx, q.FromProvince, q.ToProvince, q.MaxResults)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyResult
	}

	out := make([]MatchResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, provinceRowResult(row))
	}
	return out, nil
}

func provinceRowResult(row ScoredRideRow) MatchResult {
	var matchType MatchType
	var description string
	switch row.Compatibility {
	case ScoreExact:
		matchType = ExactMatch
		description = fmt.Sprintf("Exact route: %s → %s", row.FromAddress, row.ToAddress)
	case ScoreSameOrigin:
		matchType = SameOrigin
		description = fmt.Sprintf("Same origin: %s", row.FromAddress)
	case ScoreSameDestination:
		matchType = SameDestination
		description = fmt.Sprintf("Same destination: %s", row.ToAddress)
	default:
		matchType = PotentialMatch
		description = fmt.Sprintf("Potential route: %s → %s", row.FromAddress, row.ToAddress)
	}
	return newMatchResult(row.Ride, newScoreResult(row.Compatibility, matchType, description), StrategyProvinceSQL)
}

// InMemoryStrategy scores every available ride in process.
type InMemoryStrategy struct {
	repo      RideRepository
	resolver  *geography.Resolver
	breaker   *resilience.CircuitBreaker
	scanLimit int
}

// NewInMemoryStrategy creates the last-resort tier. breaker guards only the
// ride fetch and may be nil.
func NewInMemoryStrategy(repo RideRepository, resolver *geography.Resolver, breaker *resilience.CircuitBreaker, scanLimit int) *InMemoryStrategy {
	return &InMemoryStrategy{repo: repo, resolver: resolver, breaker: breaker, scanLimit: scanLimit}
}

func (s *InMemoryStrategy) Name() string { return StrategyInMemory }

func (s *InMemoryStrategy) Attempt(ctx context.Context, q Query) ([]MatchResult, error) {
	fetched, err := s.breaker.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return s.repo.ListAvailableRides(ctx, s.scanLimit)
	})
	if err != nil {
		return nil, err
	}
	rides, _ := fetched.([]Ride)

	out := make([]MatchResult, 0, len(rides))
	for _, ride := range rides {
		driverFrom, driverTo := rideProvinces(ctx, s.resolver, ride)
		result := ScoreWithCorridor(driverFrom, driverTo, q.FromProvince, q.ToProvince)
		if result.Score <= 0 {
			continue
		}
		out = append(out, newMatchResult(ride, result, StrategyInMemory))
	}
	if len(out) == 0 {
		return nil, ErrEmptyResult
	}
	return out, nil
}

// rideProvinces prefers the stored province columns and resolves the
// free-text addresses otherwise.
func rideProvinces(ctx context.Context, resolver *geography.Resolver, ride Ride) (geography.Province, geography.Province) {
	from, fromOK := geography.ParseProvince(ride.FromProvince)
	to, toOK := geography.ParseProvince(ride.ToProvince)

	switch {
	case fromOK && toOK:
	case fromOK:
		to = resolver.Resolve(ctx, ride.ToAddress)
	case toOK:
		from = resolver.Resolve(ctx, ride.FromAddress)
	default:
		from, to = resolver.ResolvePair(ctx, ride.FromAddress, ride.ToAddress)
	}
	return from, to
}
