package mocks

import (
	"context"

	"github.com/richxcame/ridematch/internal/geography"
	"github.com/stretchr/testify/mock"
)

// MockProvinceStore is a mock implementation of geography.ProvinceStore
type MockProvinceStore struct {
	mock.Mock
}

var _ geography.ProvinceStore = (*MockProvinceStore)(nil)

// LookupProvince mocks the persistent province lookup
func (m *MockProvinceStore) LookupProvince(ctx context.Context, normalized string) (geography.Province, error) {
	args := m.Called(ctx, normalized)
	return args.Get(0).(geography.Province), args.Error(1)
}

// MockProvinceLister is a mock implementation of geography.ProvinceLister
type MockProvinceLister struct {
	mock.Mock
}

var _ geography.ProvinceLister = (*MockProvinceLister)(nil)

// ListProvinceOrdering mocks listing the corridor table
func (m *MockProvinceLister) ListProvinceOrdering(ctx context.Context) ([]geography.ProvinceOrdering, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geography.ProvinceOrdering), args.Error(1)
}
