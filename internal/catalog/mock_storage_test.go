package catalog

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"beerdex/internal/storage"
	"beerdex/pkg/model"
)

// MockListingStore is a mock implementation of storage.ListingStore
type MockListingStore struct {
	mock.Mock
}

func (m *MockListingStore) Count(ctx context.Context, filters storage.Filters, search *storage.SearchFilter) (int64, error) {
	args := m.Called(ctx, filters, search)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingStore) Find(ctx context.Context, q storage.Query) ([]model.ListingRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ListingRecord), args.Error(1)
}

func (m *MockListingStore) Distinct(ctx context.Context, field string, filters storage.Filters) ([]string, error) {
	args := m.Called(ctx, field, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockListingStore) CountByField(ctx context.Context, field string, filters storage.Filters) (map[string]int64, error) {
	args := m.Called(ctx, field, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockListingStore) BreweryRefs(ctx context.Context) ([]model.BreweryRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BreweryRef), args.Error(1)
}

func (m *MockListingStore) LatestFirstSeen(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockListingStore) Watch(ctx context.Context) (<-chan storage.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan storage.Event), args.Error(1)
}

func (m *MockListingStore) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockListingStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
