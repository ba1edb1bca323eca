package rest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"beerdex/internal/catalog"
)

// MockCatalog is a testify mock of catalog.Service.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Grouped(ctx context.Context, req catalog.Request) (*catalog.GroupedResult, error) {
	args := m.Called(ctx, req)
	if result := args.Get(0); result != nil {
		return result.(*catalog.GroupedResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalog) Listings(ctx context.Context, req catalog.Request) (*catalog.ListingsResult, error) {
	args := m.Called(ctx, req)
	if result := args.Get(0); result != nil {
		return result.(*catalog.ListingsResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalog) Styles(ctx context.Context) ([]catalog.StyleCount, error) {
	args := m.Called(ctx)
	if styles := args.Get(0); styles != nil {
		return styles.([]catalog.StyleCount), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalog) Breweries(ctx context.Context) ([]catalog.Brewery, error) {
	args := m.Called(ctx)
	if breweries := args.Get(0); breweries != nil {
		return breweries.([]catalog.Brewery), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalog) Stats(ctx context.Context) (*catalog.Stats, error) {
	args := m.Called(ctx)
	if stats := args.Get(0); stats != nil {
		return stats.(*catalog.Stats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalog) Reindex(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
