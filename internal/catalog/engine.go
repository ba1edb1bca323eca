package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"beerdex/internal/storage"
	"beerdex/pkg/model"
)

// Request carries one catalog query: the filter set plus ordering and paging.
type Request struct {
	Options model.ListingOptions
	Sort    model.SortKey
	Page    int
	Limit   int
}

// GroupedResult is one page of the grouped (price comparison) view.
type GroupedResult struct {
	Groups     []model.BeerGroup `json:"groups"`
	ShopCounts map[string]int    `json:"shopCounts"`
	Pagination Pagination        `json:"pagination"`
}

// ListingsResult is one page of the flat per-shop listing view.
type ListingsResult struct {
	Listings   []model.ListingRecord `json:"listings"`
	Pagination Pagination            `json:"pagination"`
}

// StyleCount is one style facet entry.
type StyleCount struct {
	Style string `json:"style"`
	Count int64  `json:"count"`
}

// Brewery is one brewery facet entry.
type Brewery struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// Stats summarizes the catalog for the dashboard.
type Stats struct {
	TotalListings int64      `json:"total_listings"`
	Resolved      int64      `json:"resolved_listings"`
	Enriched      int64      `json:"enriched_listings"`
	Shops         []string   `json:"shops"`
	LastScrape    *time.Time `json:"last_scrape,omitempty"`
}

// Service is the catalog surface the transport layers depend on.
type Service interface {
	Grouped(ctx context.Context, req Request) (*GroupedResult, error)
	Listings(ctx context.Context, req Request) (*ListingsResult, error)
	Styles(ctx context.Context) ([]StyleCount, error)
	Breweries(ctx context.Context) ([]Brewery, error)
	Stats(ctx context.Context) (*Stats, error)
	Reindex(ctx context.Context) error
}

// Engine coordinates the aggregation pipeline against the listing store.
// It holds no per-request state: every query builds its own group map and
// counters, so concurrent requests need no synchronization.
type Engine struct {
	store   storage.ListingStore
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewEngine creates the catalog engine. chunkSize and chunkTimeout configure
// the fetcher; zero values use the defaults.
func NewEngine(store storage.ListingStore, chunkSize int64, chunkTimeout time.Duration, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   store,
		fetcher: NewFetcher(store, chunkSize, chunkTimeout, logger),
		logger:  logger,
	}
}

// Grouped runs the full pipeline: compile filters, fetch every matching
// record in chunks, group by canonical identity, tally shops, apply the shop
// post-filter, sort and paginate.
func (e *Engine) Grouped(ctx context.Context, req Request) (*GroupedResult, error) {
	compiled := Compile(req.Options)

	records, err := e.fetcher.FetchAll(ctx, compiled.Pre, compiled.Search)
	if err != nil {
		return nil, fmt.Errorf("fetch grouped records: %w", err)
	}

	groups := Group(records)
	shopCounts := CountShops(records)

	groups = FilterByShops(groups, compiled.Shops)
	SortGroups(groups, req.Sort)

	pageGroups, pagination := Paginate(groups, req.Page, req.Limit)

	views := make([]model.BeerGroup, 0, len(pageGroups))
	for _, g := range pageGroups {
		views = append(views, g.View())
	}

	return &GroupedResult{
		Groups:     views,
		ShopCounts: shopCounts,
		Pagination: pagination,
	}, nil
}

// Listings serves the flat per-shop view: a store-side filtered, sorted and
// range-paginated read with no aggregation.
func (e *Engine) Listings(ctx context.Context, req Request) (*ListingsResult, error) {
	compiled := CompileFlat(req.Options)

	total, err := e.store.Count(ctx, compiled.Pre, compiled.Search)
	if err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	listings, err := e.store.Find(ctx, storage.Query{
		Filters: compiled.Pre,
		Search:  compiled.Search,
		OrderBy: flatOrder(req.Sort),
		Offset:  int64(page-1) * int64(limit),
		Limit:   int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}

	return &ListingsResult{
		Listings: listings,
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	}, nil
}

func flatOrder(key model.SortKey) []storage.Order {
	switch key {
	case model.SortPriceAsc:
		return []storage.Order{{Field: "price_value"}}
	case model.SortPriceDesc:
		return []storage.Order{{Field: "price_value", Descending: true}}
	case model.SortAbvDesc:
		return []storage.Order{{Field: "abv", Descending: true}}
	case model.SortRatingDesc:
		return []storage.Order{{Field: "rating", Descending: true}}
	case model.SortNameAsc:
		return []storage.Order{{Field: "name"}}
	default:
		return []storage.Order{{Field: "first_seen", Descending: true}}
	}
}

// Styles returns style occurrence counts, most common first, ties by name.
func (e *Engine) Styles(ctx context.Context) ([]StyleCount, error) {
	counts, err := e.store.CountByField(ctx, "style", nil)
	if err != nil {
		return nil, fmt.Errorf("style facet: %w", err)
	}

	styles := make([]StyleCount, 0, len(counts))
	for style, count := range counts {
		styles = append(styles, StyleCount{Style: style, Count: count})
	}
	sort.Slice(styles, func(i, j int) bool {
		if styles[i].Count != styles[j].Count {
			return styles[i].Count > styles[j].Count
		}
		return styles[i].Style < styles[j].Style
	})
	return styles, nil
}

// Breweries returns the distinct breweries, name-sorted, each with a flag
// derived from its recorded location.
func (e *Engine) Breweries(ctx context.Context) ([]Brewery, error) {
	refs, err := e.store.BreweryRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("brewery facet: %w", err)
	}

	breweries := make([]Brewery, 0, len(refs))
	for _, ref := range refs {
		breweries = append(breweries, Brewery{
			Name: ref.Name,
			Flag: countryFlag(ref.Location),
		})
	}
	return breweries, nil
}

// Stats summarizes catalog coverage for the dashboard.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	total, err := e.store.Count(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("total listings: %w", err)
	}

	resolved, err := e.store.Count(ctx, storage.Filters{
		{Field: "canonical_id", Op: storage.OpExists, Value: true},
		{Field: "canonical_id", Op: storage.OpNotContains, Value: model.CanonicalPlaceholder},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("resolved listings: %w", err)
	}

	enriched, err := e.store.Count(ctx, storage.Filters{
		{Field: "brewery_name", Op: storage.OpExists, Value: true},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("enriched listings: %w", err)
	}

	shops, err := e.store.Distinct(ctx, "shop", nil)
	if err != nil {
		return nil, fmt.Errorf("shop list: %w", err)
	}
	sort.Strings(shops)

	stats := &Stats{
		TotalListings: total,
		Resolved:      resolved,
		Enriched:      enriched,
		Shops:         shops,
	}

	last, err := e.store.LatestFirstSeen(ctx)
	if err != nil {
		e.logger.Warn("Last scrape lookup failed", "error", err)
	} else if !last.IsZero() {
		stats.LastScrape = &last
	}

	return stats, nil
}

// Reindex recreates the store indexes the query paths depend on.
func (e *Engine) Reindex(ctx context.Context) error {
	return e.store.EnsureIndexes(ctx)
}
