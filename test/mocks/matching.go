package mocks

import (
	"context"

	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/internal/matching"
	"github.com/stretchr/testify/mock"
)

// MockRideRepository is a mock implementation of matching.RideRepository
type MockRideRepository struct {
	mock.Mock
}

var _ matching.RideRepository = (*MockRideRepository)(nil)

// SearchSmart mocks the ranking function call
func (m *MockRideRepository) SearchSmart(ctx context.Context, from, to string, radiusKm float64, limit int) ([]matching.SmartRideRow, error) {
	args := m.Called(ctx, from, to, radiusKm, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matching.SmartRideRow), args.Error(1)
}

// SearchByProvince mocks the province query
func (m *MockRideRepository) SearchByProvince(ctx context.Context, fromProvince, toProvince geography.Province, limit int) ([]matching.ScoredRideRow, error) {
	args := m.Called(ctx, fromProvince, toProvince, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matching.ScoredRideRow), args.Error(1)
}

// ListAvailableRides mocks fetching available rides
func (m *MockRideRepository) ListAvailableRides(ctx context.Context, limit int) ([]matching.Ride, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matching.Ride), args.Error(1)
}

// MockStrategy is a mock implementation of matching.Strategy
type MockStrategy struct {
	mock.Mock
	name string
}

var _ matching.Strategy = (*MockStrategy)(nil)

// NewMockStrategy creates a mock strategy reporting name
func NewMockStrategy(name string) *MockStrategy {
	return &MockStrategy{name: name}
}

// Name returns the configured strategy name
func (m *MockStrategy) Name() string {
	return m.name
}

// Attempt mocks running the strategy
func (m *MockStrategy) Attempt(ctx context.Context, q matching.Query) ([]matching.MatchResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matching.MatchResult), args.Error(1)
}
