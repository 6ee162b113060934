package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/pkg/config"
	apperrors "github.com/richxcame/ridematch/pkg/errors"
	"github.com/richxcame/ridematch/pkg/geo"
	"github.com/richxcame/ridematch/pkg/logger"
	"github.com/richxcame/ridematch/pkg/resilience"
	"github.com/richxcame/ridematch/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const tracerName = "ridematch/matching"

// Tier outcomes
const (
	outcomeSuccess     = "success"
	outcomeEmpty       = "empty"
	outcomeError       = "error"
	outcomeTimeout     = "timeout"
	outcomeCanceled    = "canceled"
	outcomeCircuitOpen = "circuit_open"
)

// Service runs ride searches over an ordered list of tiers. Its search
// methods never fail: exhausting every tier yields an empty list.
type Service struct {
	resolver *geography.Resolver
	geocoder geography.ReverseGeocoder
	tiers    []Tier
	cfg      config.SearchConfig
}

// NewService creates a new search service. Tiers are tried in the given order.
func NewService(resolver *geography.Resolver, tiers []Tier, cfg config.SearchConfig) *Service {
	if cfg.TierTimeoutMS <= 0 {
		cfg.TierTimeoutMS = config.DefaultTierTimeoutMS
	}
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = config.DefaultSearchRadiusKm
	}
	if cfg.DefaultMaxResults <= 0 {
		cfg.DefaultMaxResults = config.DefaultSearchMaxResults
	}
	return &Service{resolver: resolver, tiers: tiers, cfg: cfg}
}

// SetReverseGeocoder enables coordinate-only searches
func (s *Service) SetReverseGeocoder(geocoder geography.ReverseGeocoder) {
	s.geocoder = geocoder
}

// SearchRidesSmart searches every tier in order and returns the ranked output
// of the first one that finds rides.
func (s *Service) SearchRidesSmart(ctx context.Context, params SearchParams) []MatchResult {
	return s.search(ctx, params, s.tiers)
}

// FindOptions tunes FindMatchingRides
type FindOptions struct {
	// UseFunction allows the ranking function tier. When false only the
	// province query runs.
	UseFunction   bool
	MaxDistanceKm float64
	Limit         int
	FromCoords    *geo.Point
	ToCoords      *geo.Point
}

// FindMatchingRides searches with explicit control over the tiers used
func (s *Service) FindMatchingRides(ctx context.Context, from, to string, opts FindOptions) []MatchResult {
	params := SearchParams{
		From:       from,
		To:         to,
		FromCoords: opts.FromCoords,
		ToCoords:   opts.ToCoords,
		RadiusKm:   opts.MaxDistanceKm,
		MaxResults: opts.Limit,
	}
	if opts.UseFunction {
		return s.search(ctx, params, s.tiers)
	}
	return s.search(ctx, params, s.tiersNamed(StrategyProvinceSQL))
}

// DetectProvince classifies a free-text address
func (s *Service) DetectProvince(ctx context.Context, address string) geography.Province {
	return s.resolver.Resolve(ctx, address)
}

// CalculateRouteCompatibility resolves four addresses or province names and scores them
func (s *Service) CalculateRouteCompatibility(ctx context.Context, driverFrom, driverTo, passengerFrom, passengerTo string) ScoreResult {
	df, dt := s.resolver.ResolvePair(ctx, driverFrom, driverTo)
	pf, pt := s.resolver.ResolvePair(ctx, passengerFrom, passengerTo)
	return Score(df, dt, pf, pt)
}

// SortRidesByCompatibility scores caller-supplied rides against a route,
// drops incompatible ones and ranks the rest.
func (s *Service) SortRidesByCompatibility(ctx context.Context, rides []Ride, from, to string) []MatchResult {
	pf, pt := s.resolver.ResolvePair(ctx, from, to)

	out := make([]MatchResult, 0, len(rides))
	for _, ride := range rides {
		df, dt := rideProvinces(ctx, s.resolver, ride)
		result := Score(df, dt, pf, pt)
		if result.Score <= 0 {
			continue
		}
		out = append(out, newMatchResult(ride, result, StrategySort))
	}
	return Rank(out)
}

// ClearCache drops all memoized province resolutions
func (s *Service) ClearCache(ctx context.Context) {
	s.resolver.ClearCache(ctx)
}

func (s *Service) search(ctx context.Context, params SearchParams, tiers []Tier) []MatchResult {
	start := time.Now()
	params = s.withDefaults(params)

	results := []MatchResult{}
	strategy := strategyNone

	attrs := []attribute.KeyValue{
		tracing.SearchFromKey.String(params.From),
		tracing.SearchToKey.String(params.To),
		tracing.SearchMaxResultsKey.Int(params.MaxResults),
	}
	_ = tracing.TraceOperation(ctx, tracerName, "matching.search", attrs, func(ctx context.Context) error {
		q := s.buildQuery(ctx, params)
		tracing.AddSpanAttributes(ctx,
			tracing.SearchFromProvince.String(string(q.FromProvince)),
			tracing.SearchToProvince.String(string(q.ToProvince)),
		)

		for _, t := range tiers {
			out, err := s.attempt(ctx, t, q)
			if err != nil {
				continue
			}
			results = Rank(out)
			if len(results) > q.MaxResults {
				results = results[:q.MaxResults]
			}
			strategy = t.Strategy.Name()
			break
		}

		tracing.AddSpanAttributes(ctx,
			tracing.SearchStrategyKey.String(strategy),
			tracing.SearchResultsKey.Int(len(results)),
		)
		return nil
	})

	recordSearch(strategy, len(results), time.Since(start))
	logger.InfoContext(ctx, "ride search completed",
		zap.String("from", params.From),
		zap.String("to", params.To),
		zap.String("strategy", strategy),
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return results
}

// attempt runs one tier under its breaker and timeout. Any failure, including
// an empty result, is returned so the caller moves on to the next tier.
func (s *Service) attempt(ctx context.Context, t Tier, q Query) ([]MatchResult, error) {
	name := t.Strategy.Name()
	start := time.Now()

	tierCtx, cancel := context.WithTimeout(ctx, s.cfg.TierTimeout())
	defer cancel()

	var results []MatchResult
	attrs := []attribute.KeyValue{tracing.SearchStrategyKey.String(name)}
	err := tracing.TraceOperation(tierCtx, tracerName, "matching.tier."+name, attrs, func(ctx context.Context) error {
		out, err := t.Breaker.Execute(ctx, func(ctx context.Context) (interface{}, error) {
			return t.Strategy.Attempt(ctx, q)
		})
		if errors.Is(err, ErrEmptyResult) {
			return nil
		}
		if err != nil {
			return err
		}
		results, _ = out.([]MatchResult)
		return nil
	})
	if err == nil && len(results) == 0 {
		err = ErrEmptyResult
	}

	outcome := tierOutcome(tierCtx, err)
	recordTier(name, outcome, time.Since(start))
	if err != nil {
		s.reportTierFailure(ctx, name, outcome, err)
		return nil, err
	}
	return results, nil
}

func (s *Service) reportTierFailure(ctx context.Context, strategy, reason string, err error) {
	fields := []zap.Field{
		zap.String("strategy", strategy),
		zap.String("reason", reason),
	}

	switch reason {
	case outcomeEmpty:
		logger.DebugContext(ctx, "search tier found no rides", fields...)
	case outcomeError, outcomeTimeout:
		logger.WarnContext(ctx, "search tier failed", append(fields, zap.Error(err))...)
		apperrors.CaptureErrorWithContext(ctx, err, map[string]string{
			"strategy": strategy,
			"reason":   reason,
		})
	default:
		logger.WarnContext(ctx, "search tier skipped", append(fields, zap.Error(err))...)
	}
}

func tierOutcome(tierCtx context.Context, err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, ErrEmptyResult):
		return outcomeEmpty
	case errors.Is(err, resilience.ErrCircuitOpen):
		return outcomeCircuitOpen
	case errors.Is(err, context.DeadlineExceeded), errors.Is(tierCtx.Err(), context.DeadlineExceeded):
		return outcomeTimeout
	case errors.Is(err, context.Canceled):
		return outcomeCanceled
	default:
		return outcomeError
	}
}

func (s *Service) buildQuery(ctx context.Context, params SearchParams) Query {
	from := s.addressFor(ctx, params.From, params.FromCoords)
	to := s.addressFor(ctx, params.To, params.ToCoords)
	fromProvince, toProvince := s.resolver.ResolvePair(ctx, from, to)

	return Query{
		From:         from,
		To:           to,
		FromProvince: fromProvince,
		ToProvince:   toProvince,
		RadiusKm:     params.RadiusKm,
		MaxResults:   params.MaxResults,
	}
}

// addressFor reverse geocodes coordinates when no address text was given.
func (s *Service) addressFor(ctx context.Context, text string, coords *geo.Point) string {
	if strings.TrimSpace(text) != "" || coords == nil || s.geocoder == nil {
		return text
	}
	address, err := s.geocoder.ReverseGeocode(ctx, *coords)
	if err != nil {
		logger.DebugContext(ctx, "reverse geocoding failed",
			zap.Float64("lat", coords.Lat),
			zap.Float64("lng", coords.Lng),
			zap.Error(err),
		)
		return text
	}
	return address
}

func (s *Service) withDefaults(params SearchParams) SearchParams {
	if params.RadiusKm <= 0 {
		params.RadiusKm = s.cfg.DefaultRadiusKm
	}
	if params.MaxResults <= 0 {
		params.MaxResults = s.cfg.DefaultMaxResults
	}
	if params.MaxResults > config.MaxSearchResults {
		params.MaxResults = config.MaxSearchResults
	}
	return params
}

func (s *Service) tiersNamed(names ...string) []Tier {
	out := make([]Tier, 0, len(names))
	for _, t := range s.tiers {
		for _, name := range names {
			if t.Strategy.Name() == name {
				out = append(out, t)
			}
		}
	}
	return out
}
