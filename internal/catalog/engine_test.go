package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beerdex/internal/storage"
	"beerdex/pkg/model"
)

func TestEngine_Grouped(t *testing.T) {
	records := []model.ListingRecord{
		rec("A", "X", price(1000), day(2)),
		rec("A", "Y", price(900), day(1)),
	}

	store := new(MockListingStore)
	store.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(int64(2), nil)
	store.On("Find", mock.Anything, mock.Anything).Return(records, nil)

	engine := NewEngine(store, 1000, 0, nil)
	result, err := engine.Grouped(context.Background(), Request{Page: 1, Limit: 20})
	require.NoError(t, err)

	require.Len(t, result.Groups, 1)
	g := result.Groups[0]
	assert.Equal(t, "A", g.CanonicalID)
	assert.Equal(t, 900.0, g.MinPrice)
	assert.Equal(t, 1000.0, g.MaxPrice)

	// Items in the view are price-sorted ascending.
	require.Len(t, g.Items, 2)
	assert.Equal(t, "Y", g.Items[0].Shop)
	assert.Equal(t, "X", g.Items[1].Shop)

	assert.Equal(t, map[string]int{"X": 1, "Y": 1}, result.ShopCounts)
	assert.Equal(t, int64(1), result.Pagination.Total)
	assert.Equal(t, 1, result.Pagination.TotalPages)
}

func TestEngine_Grouped_ShopFilterAndCounts(t *testing.T) {
	records := []model.ListingRecord{
		rec("A", "X", price(1000), day(2)),
		rec("A", "Y", price(900), day(1)),
	}

	store := new(MockListingStore)
	store.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(int64(2), nil)
	store.On("Find", mock.Anything, mock.Anything).Return(records, nil)

	engine := NewEngine(store, 1000, 0, nil)

	result, err := engine.Grouped(context.Background(), Request{
		Options: model.ListingOptions{Shops: []string{"Y"}},
		Page:    1, Limit: 20,
	})
	require.NoError(t, err)
	assert.Len(t, result.Groups, 1, "group has a Y item, so it stays")
	assert.Equal(t, map[string]int{"X": 1, "Y": 1}, result.ShopCounts,
		"shop counts never reflect the shop selection itself")

	result, err = engine.Grouped(context.Background(), Request{
		Options: model.ListingOptions{Shops: []string{"Z"}},
		Page:    1, Limit: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Groups)
	assert.Equal(t, int64(0), result.Pagination.Total)
	assert.Zero(t, result.Pagination.TotalPages)
}

func TestEngine_Grouped_EmptyIsSuccess(t *testing.T) {
	store := new(MockListingStore)
	store.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

	engine := NewEngine(store, 1000, 0, nil)
	result, err := engine.Grouped(context.Background(), Request{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Empty(t, result.Groups)
	assert.Empty(t, result.ShopCounts)
	assert.Zero(t, result.Pagination.Total)
	store.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestEngine_Grouped_CountFailure(t *testing.T) {
	store := new(MockListingStore)
	store.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("store down"))

	engine := NewEngine(store, 1000, 0, nil)
	_, err := engine.Grouped(context.Background(), Request{Page: 1, Limit: 20})
	assert.Error(t, err)
}

func TestEngine_Listings(t *testing.T) {
	store := new(MockListingStore)
	store.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(int64(45), nil)
	store.On("Find", mock.Anything, mock.MatchedBy(func(q storage.Query) bool {
		return q.Offset == 20 && q.Limit == 20 &&
			len(q.OrderBy) == 1 && q.OrderBy[0].Field == "price_value" && !q.OrderBy[0].Descending
	})).Return([]model.ListingRecord{rec("A", "X", price(800), day(1))}, nil)

	engine := NewEngine(store, 1000, 0, nil)
	result, err := engine.Listings(context.Background(), Request{
		Sort: model.SortPriceAsc,
		Page: 2, Limit: 20,
	})
	require.NoError(t, err)

	assert.Len(t, result.Listings, 1)
	assert.Equal(t, int64(45), result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	store.AssertExpectations(t)
}

func TestFlatOrder(t *testing.T) {
	tests := []struct {
		key        model.SortKey
		field      string
		descending bool
	}{
		{model.SortNewest, "first_seen", true},
		{model.SortPriceAsc, "price_value", false},
		{model.SortPriceDesc, "price_value", true},
		{model.SortAbvDesc, "abv", true},
		{model.SortRatingDesc, "rating", true},
		{model.SortNameAsc, "name", false},
		{model.SortKey(""), "first_seen", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			order := flatOrder(tt.key)
			require.Len(t, order, 1)
			assert.Equal(t, tt.field, order[0].Field)
			assert.Equal(t, tt.descending, order[0].Descending)
		})
	}
}

func TestEngine_Styles(t *testing.T) {
	store := new(MockListingStore)
	store.On("CountByField", mock.Anything, "style", mock.Anything).Return(map[string]int64{
		"IPA":    12,
		"Stout":  12,
		"Lager":  3,
		"Saison": 40,
	}, nil)

	engine := NewEngine(store, 1000, 0, nil)
	styles, err := engine.Styles(context.Background())
	require.NoError(t, err)

	want := []StyleCount{
		{Style: "Saison", Count: 40},
		{Style: "IPA", Count: 12},
		{Style: "Stout", Count: 12},
		{Style: "Lager", Count: 3},
	}
	assert.Equal(t, want, styles)
}

func TestEngine_Breweries(t *testing.T) {
	store := new(MockListingStore)
	store.On("BreweryRefs", mock.Anything).Return([]model.BreweryRef{
		{Name: "Kyoto Brewing", Location: "Kyoto, Japan"},
		{Name: "Mystery Co"},
	}, nil)

	engine := NewEngine(store, 1000, 0, nil)
	breweries, err := engine.Breweries(context.Background())
	require.NoError(t, err)

	require.Len(t, breweries, 2)
	assert.Equal(t, "🇯🇵", breweries[0].Flag)
	assert.Equal(t, "🏳️", breweries[1].Flag)
}

func TestEngine_Stats(t *testing.T) {
	last := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	store := new(MockListingStore)
	store.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(int64(100), nil).Once()
	store.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(int64(80), nil).Once()
	store.On("Count", mock.Anything, mock.Anything, mock.Anything).Return(int64(60), nil).Once()
	store.On("Distinct", mock.Anything, "shop", mock.Anything).Return([]string{"Volta", "Arome"}, nil)
	store.On("LatestFirstSeen", mock.Anything).Return(last, nil)

	engine := NewEngine(store, 1000, 0, nil)
	stats, err := engine.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(100), stats.TotalListings)
	assert.Equal(t, int64(80), stats.Resolved)
	assert.Equal(t, int64(60), stats.Enriched)
	assert.Equal(t, []string{"Arome", "Volta"}, stats.Shops)
	require.NotNil(t, stats.LastScrape)
	assert.Equal(t, last, *stats.LastScrape)
}
