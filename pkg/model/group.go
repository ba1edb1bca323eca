package model

import (
	"sort"
	"time"
)

// BeerGroup is the aggregation unit of the grouped catalog view: all listings
// that share one canonical identity, plus cross-shop statistics.
//
// The representative metadata (Name, Image, Style, ...) is copied from exactly
// one member: the first one encountered while consuming records in descending
// first-seen order, which makes it the member with the greatest FirstSeen.
type BeerGroup struct {
	CanonicalID string `json:"canonical_id"`

	Name        string  `json:"name"`
	Image       string  `json:"image,omitempty"`
	Style       string  `json:"style,omitempty"`
	Abv         float64 `json:"abv,omitempty"`
	Ibu         float64 `json:"ibu,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	RatingCount int64   `json:"rating_count,omitempty"`
	IsSet       bool    `json:"is_set,omitempty"`

	BreweryName     string `json:"brewery_name,omitempty"`
	BreweryLocation string `json:"brewery_location,omitempty"`
	BreweryLogo     string `json:"brewery_logo,omitempty"`
	BreweryType     string `json:"brewery_type,omitempty"`

	// Items holds every member listing. The grouping engine appends them in
	// encounter order; display ordering is applied only when building a view.
	Items []ListingRecord `json:"items"`

	// MinPrice and MaxPrice cover only members with a parsed price value.
	// Both are 0 when no member has one; 0 is a placeholder, not a price.
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`

	// NewestSeen is the greatest FirstSeen across members.
	NewestSeen time.Time `json:"newest_seen"`
}

// View returns a copy with Items sorted ascending by price, unpriced members
// last. This ordering is presentational and independent of catalog sorting.
func (g *BeerGroup) View() BeerGroup {
	v := *g
	v.Items = make([]ListingRecord, len(g.Items))
	copy(v.Items, g.Items)
	sort.SliceStable(v.Items, func(i, j int) bool {
		pi, pj := v.Items[i].PriceValue, v.Items[j].PriceValue
		if pi == nil {
			return false
		}
		if pj == nil {
			return true
		}
		return *pi < *pj
	})
	return v
}
