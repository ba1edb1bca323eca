package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"beerdex/internal/storage"
	"beerdex/pkg/model"
)

// searchFields are the text fields the free-text search matches against.
var searchFields = []string{"name", "brewery_name", "style"}

// CompiledFilter is the split output of the filter compiler: predicates that
// are pushed down to the store before the fetch, and the shop selection that
// must wait until groups are fully formed.
//
// Pushing the shop predicate down would restrict the fetched rows to the
// selected shops and silently drop the other shops' offers for matching
// beers. The grouped view needs the complete member set per beer before the
// "available in every selected shop" rule can be evaluated, so shop
// membership is the single post-group predicate.
type CompiledFilter struct {
	Pre    storage.Filters
	Search *storage.SearchFilter
	Shops  []string
}

// Compile translates the user filter set into the grouped-view predicate
// split. The structural canonical-identity predicate is always included:
// unresolved listings never reach the grouping engine.
func Compile(opts model.ListingOptions) CompiledFilter {
	pre := storage.Filters{
		{Field: "canonical_id", Op: storage.OpExists, Value: true},
		{Field: "canonical_id", Op: storage.OpNotContains, Value: model.CanonicalPlaceholder},
	}
	pre = append(pre, compileCommon(opts)...)

	return CompiledFilter{
		Pre:    pre,
		Search: compileSearch(opts.Search),
		Shops:  normalizeList(opts.Shops),
	}
}

// CompileFlat translates the filter set for the non-grouped listing path.
// Without grouping there is nothing a shop predicate could corrupt, so it is
// pushed down like any other, and unresolved listings stay visible.
func CompileFlat(opts model.ListingOptions) CompiledFilter {
	pre := compileCommon(opts)
	if shops := normalizeList(opts.Shops); len(shops) > 0 {
		pre = append(pre, storage.Filter{Field: "shop", Op: storage.OpIn, Value: shops})
	}
	return CompiledFilter{Pre: pre, Search: compileSearch(opts.Search)}
}

func compileCommon(opts model.ListingOptions) storage.Filters {
	var pre storage.Filters

	if opts.MinAbv > 0 {
		pre = append(pre, storage.Filter{Field: "abv", Op: storage.OpGte, Value: opts.MinAbv})
	}
	if opts.MaxAbv > 0 {
		pre = append(pre, storage.Filter{Field: "abv", Op: storage.OpLte, Value: opts.MaxAbv})
	}
	if opts.MinIbu > 0 {
		pre = append(pre, storage.Filter{Field: "ibu", Op: storage.OpGte, Value: opts.MinIbu})
	}
	if opts.MaxIbu > 0 {
		pre = append(pre, storage.Filter{Field: "ibu", Op: storage.OpLte, Value: opts.MaxIbu})
	}
	if opts.MinRating > 0 {
		pre = append(pre, storage.Filter{Field: "rating", Op: storage.OpGte, Value: opts.MinRating})
	}

	if styles := normalizeList(opts.Styles); len(styles) > 0 {
		pre = append(pre, storage.Filter{Field: "style", Op: storage.OpIn, Value: styles})
	}
	if breweries := normalizeList(opts.Breweries); len(breweries) > 0 {
		pre = append(pre, storage.Filter{Field: "brewery_name", Op: storage.OpIn, Value: breweries})
	}

	switch opts.Stock {
	case model.StockInStock:
		pre = append(pre, storage.Filter{Field: "stock_status", Op: storage.OpContains, Value: "in stock"})
	case model.StockSoldOut:
		pre = append(pre, storage.Filter{Field: "stock_status", Op: storage.OpNotContains, Value: "in stock"})
	}

	switch opts.Set {
	case model.SetIndividual:
		pre = append(pre, storage.Filter{Field: "is_set", Op: storage.OpNe, Value: true})
	case model.SetOnly:
		pre = append(pre, storage.Filter{Field: "is_set", Op: storage.OpEq, Value: true})
	}

	return pre
}

func compileSearch(term string) *storage.SearchFilter {
	term = NormalizeText(term)
	if term == "" {
		return nil
	}
	return &storage.SearchFilter{Fields: searchFields, Term: term}
}

// NormalizeText canonicalizes Unicode composition and trims whitespace, so
// that decomposed and composed spellings of the same string compare equal.
// Shop pages mix both forms freely, Japanese ones in particular.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// normalizeList trims, normalizes and drops empty tokens.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = NormalizeText(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
