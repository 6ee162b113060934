//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/internal/matching"
	"github.com/richxcame/ridematch/pkg/config"
	"github.com/richxcame/ridematch/test/helpers"
)

type seededRide struct {
	from, to         string
	fromProv, toProv string
	fromLat, fromLng float64
	departure        time.Duration
	price            float64
	status           string
}

// SearchIntegrationTestSuite runs the repositories and search tiers against a migrated database
type SearchIntegrationTestSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	rides     *matching.Repository
	provinces *geography.Repository
	ids       map[string]uuid.UUID
}

func TestSearchIntegrationSuite(t *testing.T) {
	suite.Run(t, new(SearchIntegrationTestSuite))
}

func (s *SearchIntegrationTestSuite) SetupSuite() {
	s.pool = helpers.SetupTestDatabase(s.T())
	s.rides = matching.NewRepository(s.pool)
	s.provinces = geography.NewRepository(s.pool)
}

func (s *SearchIntegrationTestSuite) SetupTest() {
	helpers.ResetTables(s.T(), s.pool, "rides")

	s.ids = map[string]uuid.UUID{}
	seed := map[string]seededRide{
		"maputo-inhambane": {"Maputo", "Inhambane", "Maputo", "Inhambane", -25.9692, 32.5732, 24 * time.Hour, 900, "available"},
		"gaza-inhambane":   {"Xai-Xai", "Inhambane", "Gaza", "Inhambane", -25.0519, 33.6442, 48 * time.Hour, 600, "available"},
		"nampula-pemba":    {"Nampula", "Pemba", "Nampula", "Cabo Delgado", -15.1165, 39.2666, 12 * time.Hour, 700, "available"},
		"cancelled":        {"Maputo", "Inhambane", "Maputo", "Inhambane", -25.9692, 32.5732, 6 * time.Hour, 300, "cancelled"},
	}
	for key, r := range seed {
		s.ids[key] = s.insertRide(r)
	}
}

func (s *SearchIntegrationTestSuite) insertRide(r seededRide) uuid.UUID {
	id := uuid.New()
	_, err := s.pool.Exec(context.Background(), `
		INSERT INTO rides (
			id, driver_id, driver_name, driver_rating, from_address, to_address,
			from_province, to_province, from_lat, from_lng,
			departure_date, price_per_seat, available_seats, max_passengers,
			vehicle_type, status
		) VALUES ($1, $2, 'Test Driver', 4.5, $3, $4, $5, $6, $7, $8, $9, $10, 3, 4, 'sedan', $11)
	`, id, uuid.New(), r.from, r.to, r.fromProv, r.toProv, r.fromLat, r.fromLng,
		time.Now().Add(r.departure), r.price, r.status)
	require.NoError(s.T(), err)
	return id
}

func (s *SearchIntegrationTestSuite) TestLookupProvince() {
	ctx := context.Background()

	p, err := s.provinces.LookupProvince(ctx, "sofala")
	s.Require().NoError(err)
	s.Equal(geography.Sofala, p)

	p, err = s.provinces.LookupProvince(ctx, "maputo")
	s.Require().NoError(err)
	s.Equal(geography.Maputo, p)

	p, err = s.provinces.LookupProvince(ctx, "lisboa")
	s.Require().NoError(err)
	s.Equal(geography.Unknown, p)
}

func (s *SearchIntegrationTestSuite) TestListProvinceOrdering() {
	rows, err := s.provinces.ListProvinceOrdering(context.Background())
	s.Require().NoError(err)
	s.Len(rows, len(geography.KnownProvinces()))

	for i := 1; i < len(rows); i++ {
		s.LessOrEqual(rows[i-1].CorridorOrder, rows[i].CorridorOrder)
	}
	s.Equal(geography.Niassa, rows[len(rows)-1].Province)
}

func (s *SearchIntegrationTestSuite) TestSearchSmartScoresByDirection() {
	rows, err := s.rides.SearchSmart(context.Background(), "xai xai", "inhambane", 100, 50)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	s.Equal(s.ids["gaza-inhambane"], rows[0].ID)
	s.Require().NotNil(rows[0].DirectionScore)
	s.Equal(100, *rows[0].DirectionScore)
	s.Equal("exact_match", rows[0].MatchType)

	s.Equal(s.ids["maputo-inhambane"], rows[1].ID)
	s.Require().NotNil(rows[1].DirectionScore)
	s.Equal(90, *rows[1].DirectionScore)
	s.Equal("same_segment", rows[1].MatchType)
	s.NotNil(rows[1].DistanceFromCityKm)
}

func (s *SearchIntegrationTestSuite) TestSearchByProvince() {
	rows, err := s.rides.SearchByProvince(context.Background(), geography.Gaza, geography.Inhambane, 50)
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	s.Equal(s.ids["gaza-inhambane"], rows[0].ID)
	s.Equal(100, rows[0].Compatibility)
	s.Equal(s.ids["maputo-inhambane"], rows[1].ID)
	s.Equal(75, rows[1].Compatibility)
}

func (s *SearchIntegrationTestSuite) TestSearchByProvinceUnknownNeverMatches() {
	rows, err := s.rides.SearchByProvince(context.Background(), geography.Unknown, geography.Unknown, 50)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *SearchIntegrationTestSuite) TestListAvailableRides() {
	rides, err := s.rides.ListAvailableRides(context.Background(), 50)
	s.Require().NoError(err)
	s.Require().Len(rides, 3)

	s.Equal(s.ids["nampula-pemba"], rides[0].ID)
	s.Equal(s.ids["maputo-inhambane"], rides[1].ID)
	s.Equal(s.ids["gaza-inhambane"], rides[2].ID)
	for _, ride := range rides {
		s.Equal(matching.RideStatusAvailable, ride.Status)
	}
}

func (s *SearchIntegrationTestSuite) TestServiceSearchEndToEnd() {
	resolver := geography.NewResolver(s.provinces, geography.NewMemoryCache(), geography.ResolverConfig{
		LookupTimeout: time.Second,
	})
	tiers := []matching.Tier{
		{Strategy: matching.NewSmartFunctionStrategy(s.rides)},
		{Strategy: matching.NewProvinceSQLStrategy(s.rides)},
		{Strategy: matching.NewInMemoryStrategy(s.rides, resolver, nil, config.DefaultFallbackScanLimit)},
	}
	service := matching.NewService(resolver, tiers, config.SearchConfig{})

	results := service.SearchRidesSmart(context.Background(), matching.SearchParams{
		From: "Xai-Xai",
		To:   "Inhambane",
	})
	s.Require().Len(results, 2)
	s.Equal(s.ids["gaza-inhambane"], results[0].ID)
	s.Equal(matching.ExactMatch, results[0].MatchType)
	s.Equal(matching.StrategySmartFunction, results[0].Strategy)
	s.Equal(s.ids["maputo-inhambane"], results[1].ID)

	results = service.FindMatchingRides(context.Background(), "Xai-Xai", "Inhambane", matching.FindOptions{})
	s.Require().Len(results, 2)
	s.Equal(matching.StrategyProvinceSQL, results[0].Strategy)
}

func (s *SearchIntegrationTestSuite) TestInMemoryTierAgainstDatabase() {
	resolver := geography.NewResolver(s.provinces, geography.NewMemoryCache(), geography.ResolverConfig{
		LookupTimeout: time.Second,
	})
	strategy := matching.NewInMemoryStrategy(s.rides, resolver, nil, config.DefaultFallbackScanLimit)

	results, err := strategy.Attempt(context.Background(), matching.Query{
		From:         "Chokwe",
		To:           "Maxixe",
		FromProvince: geography.Gaza,
		ToProvince:   geography.Inhambane,
		RadiusKm:     100,
		MaxResults:   50,
	})
	s.Require().NoError(err)
	s.Require().Len(results, 2)

	byID := map[uuid.UUID]matching.MatchResult{}
	for _, r := range results {
		byID[r.ID] = r
	}
	s.Equal(100, byID[s.ids["gaza-inhambane"]].Score)
	s.Equal(90, byID[s.ids["maputo-inhambane"]].Score)
}
