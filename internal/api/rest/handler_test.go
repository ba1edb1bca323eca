package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beerdex/internal/catalog"
	"beerdex/internal/storage"
	"beerdex/pkg/model"
)

func newTestHandler(t *testing.T) (*MockCatalog, *http.ServeMux) {
	t.Helper()
	svc := &MockCatalog{}
	h := NewHandler(svc, nil, Options{DefaultLimit: 20, MaxLimit: 100})
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return svc, mux
}

func doRequest(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandleGroupedBeers(t *testing.T) {
	svc, mux := newTestHandler(t)

	result := &catalog.GroupedResult{
		Groups:     []model.BeerGroup{{CanonicalID: "abc", Name: "Orval"}},
		ShopCounts: map[string]int{"hopt": 1},
		Pagination: catalog.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1},
	}
	svc.On("Grouped", mock.Anything, mock.MatchedBy(func(req catalog.Request) bool {
		return req.Options.Search == "orval" &&
			req.Sort == model.SortPriceAsc &&
			req.Page == 2 &&
			req.Limit == 50 &&
			assert.ObjectsAreEqual([]string{"hopt", "beerwulf"}, req.Options.Shops)
	})).Return(result, nil)

	rec := doRequest(mux, http.MethodGet, "/api/v1/beers?search=orval&sort=price_asc&page=2&limit=50&shops=hopt,beerwulf")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body catalog.GroupedResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, result.ShopCounts, body.ShopCounts)
	require.Len(t, body.Groups, 1)
	assert.Equal(t, "Orval", body.Groups[0].Name)
	svc.AssertExpectations(t)
}

func TestHandleGroupedBeersDefaults(t *testing.T) {
	svc, mux := newTestHandler(t)

	svc.On("Grouped", mock.Anything, mock.MatchedBy(func(req catalog.Request) bool {
		return req.Sort == model.SortNewest && req.Page == 1 && req.Limit == 20
	})).Return(&catalog.GroupedResult{}, nil)

	rec := doRequest(mux, http.MethodGet, "/api/v1/beers")
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleGroupedBeersForgivingParams(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   catalog.Request
	}{
		{
			name:   "unknown sort falls back to newest",
			target: "/api/v1/beers?sort=bogus",
			want:   catalog.Request{Sort: model.SortNewest, Page: 1, Limit: 20},
		},
		{
			name:   "non-numeric page falls back",
			target: "/api/v1/beers?page=abc",
			want:   catalog.Request{Sort: model.SortNewest, Page: 1, Limit: 20},
		},
		{
			name:   "non-numeric limit falls back",
			target: "/api/v1/beers?limit=xyz&page=3",
			want:   catalog.Request{Sort: model.SortNewest, Page: 3, Limit: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mux := newTestHandler(t)
			svc.On("Grouped", mock.Anything, tt.want).Return(&catalog.GroupedResult{}, nil)

			rec := doRequest(mux, http.MethodGet, tt.target)
			assert.Equal(t, http.StatusOK, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGroupedBeersBadParams(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unknown stock mode", "/api/v1/beers?stock=backordered"},
		{"unknown set mode", "/api/v1/beers?set=crate"},
		{"inverted abv range", "/api/v1/beers?minAbv=9&maxAbv=4"},
		{"negative rating floor", "/api/v1/beers?minRating=-1"},
		{"non-numeric bound", "/api/v1/beers?minAbv=strong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mux := newTestHandler(t)
			rec := doRequest(mux, http.MethodGet, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), ErrCodeBadRequest)
			svc.AssertNotCalled(t, "Grouped", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleGroupedBeersEngineFailure(t *testing.T) {
	svc, mux := newTestHandler(t)
	svc.On("Grouped", mock.Anything, mock.Anything).Return(nil, errors.New("store down"))

	rec := doRequest(mux, http.MethodGet, "/api/v1/beers")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrCodeInternalError)
}

func TestHandleGroupedBeersStoreErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "unreachable store",
			err:      fmt.Errorf("count listings: %w", storage.ErrUnavailable),
			wantCode: http.StatusServiceUnavailable,
			wantBody: ErrCodeUnavailable,
		},
		{
			name:     "malformed store query",
			err:      fmt.Errorf("find listings: %w", storage.ErrInvalidQuery),
			wantCode: http.StatusBadRequest,
			wantBody: ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mux := newTestHandler(t)
			svc.On("Grouped", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := doRequest(mux, http.MethodGet, "/api/v1/beers")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleListings(t *testing.T) {
	svc, mux := newTestHandler(t)

	svc.On("Listings", mock.Anything, mock.MatchedBy(func(req catalog.Request) bool {
		return req.Options.Stock == model.StockInStock && req.Limit == 100
	})).Return(&catalog.ListingsResult{
		Listings:   []model.ListingRecord{{SourceID: "untappd:1", Name: "Orval"}},
		Pagination: catalog.Pagination{Page: 1, Limit: 100, Total: 1, TotalPages: 1},
	}, nil)

	// limit above the maximum is clamped
	rec := doRequest(mux, http.MethodGet, "/api/v1/listings?stock=in_stock&limit=500")
	require.Equal(t, http.StatusOK, rec.Code)

	var body catalog.ListingsResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Listings, 1)
	assert.Equal(t, "Orval", body.Listings[0].Name)
	svc.AssertExpectations(t)
}

func TestHandleStyles(t *testing.T) {
	svc, mux := newTestHandler(t)
	svc.On("Styles", mock.Anything).Return([]catalog.StyleCount{
		{Style: "IPA", Count: 42},
		{Style: "Stout", Count: 17},
	}, nil)

	rec := doRequest(mux, http.MethodGet, "/api/v1/styles")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Styles []catalog.StyleCount `json:"styles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "IPA", body.Styles[0].Style)
}

func TestHandleBreweries(t *testing.T) {
	svc, mux := newTestHandler(t)
	svc.On("Breweries", mock.Anything).Return([]catalog.Brewery{
		{Name: "Brasserie d'Orval", Flag: "🇧🇪"},
	}, nil)

	rec := doRequest(mux, http.MethodGet, "/api/v1/breweries")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Brasserie d'Orval")
}

func TestHandleStats(t *testing.T) {
	svc, mux := newTestHandler(t)
	svc.On("Stats", mock.Anything).Return(&catalog.Stats{
		TotalListings: 1200,
		Resolved:      900,
		Shops:         []string{"beerwulf", "hopt"},
	}, nil)

	rec := doRequest(mux, http.MethodGet, "/api/v1/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats catalog.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1200), stats.TotalListings)
}

func TestHandleHealth(t *testing.T) {
	_, mux := newTestHandler(t)

	rec := doRequest(mux, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAdminRoutesUnregisteredWithoutAuth(t *testing.T) {
	_, mux := newTestHandler(t)

	rec := doRequest(mux, http.MethodPost, "/admin/v1/reindex")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
