package model

import (
	"strings"
	"time"
)

// CanonicalPlaceholder marks a canonical ID that points at a search-results
// page instead of a resolved product page. Records carrying it are treated
// as unresolved and never participate in grouping.
const CanonicalPlaceholder = "/search?"

// ListingRecord is one shop's scraped offer for one product.
//
// CanonicalID is the external product identifier used to decide that two
// listings refer to the same real-world product. An empty value, or one
// containing CanonicalPlaceholder, means the listing is unresolved.
type ListingRecord struct {
	// SourceID is unique per shop+URL.
	SourceID string `json:"source_id" bson:"source_id"`
	Shop     string `json:"shop" bson:"shop"`

	CanonicalID string `json:"canonical_id,omitempty" bson:"canonical_id,omitempty"`

	Name  string `json:"name" bson:"name"`
	URL   string `json:"url,omitempty" bson:"url,omitempty"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`

	// Price is the raw scraped text; PriceValue is the parsed numeric value,
	// nil when the scraper could not parse one.
	Price      string   `json:"price,omitempty" bson:"price,omitempty"`
	PriceValue *float64 `json:"price_value,omitempty" bson:"price_value,omitempty"`

	// StockStatus is free text from the shop page, normalized only by
	// substring match (see InStock / SoldOut).
	StockStatus string `json:"stock_status,omitempty" bson:"stock_status,omitempty"`

	FirstSeen time.Time `json:"first_seen" bson:"first_seen"`
	LastSeen  time.Time `json:"last_seen" bson:"last_seen"`

	// IsSet marks bundle listings (multi-bottle sets).
	IsSet bool `json:"is_set,omitempty" bson:"is_set,omitempty"`

	// Enrichment fields, zero-valued until the enrichment pipeline fills them.
	Style           string  `json:"style,omitempty" bson:"style,omitempty"`
	Abv             float64 `json:"abv,omitempty" bson:"abv,omitempty"`
	Ibu             float64 `json:"ibu,omitempty" bson:"ibu,omitempty"`
	Rating          float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	RatingCount     int64   `json:"rating_count,omitempty" bson:"rating_count,omitempty"`
	BreweryName     string  `json:"brewery_name,omitempty" bson:"brewery_name,omitempty"`
	BreweryLocation string  `json:"brewery_location,omitempty" bson:"brewery_location,omitempty"`
	BreweryLogo     string  `json:"brewery_logo,omitempty" bson:"brewery_logo,omitempty"`
	BreweryType     string  `json:"brewery_type,omitempty" bson:"brewery_type,omitempty"`
	EnrichedImage   string  `json:"enriched_image,omitempty" bson:"enriched_image,omitempty"`
}

// Groupable reports whether the record carries a resolved canonical identity.
// Unresolved records never form or join a group.
func (r ListingRecord) Groupable() bool {
	return r.CanonicalID != "" && !strings.Contains(r.CanonicalID, CanonicalPlaceholder)
}

// InStock reports whether the raw stock text reads as purchasable.
// Shops phrase availability inconsistently, so this is a substring match.
func (r ListingRecord) InStock() bool {
	return strings.Contains(strings.ToLower(r.StockStatus), "in stock")
}

// SoldOut reports whether the raw stock text reads as unavailable.
func (r ListingRecord) SoldOut() bool {
	s := strings.ToLower(r.StockStatus)
	return strings.Contains(s, "sold out") || strings.Contains(s, "out of stock")
}

// DisplayImage prefers the enriched product image over the shop's own.
func (r ListingRecord) DisplayImage() string {
	if r.EnrichedImage != "" {
		return r.EnrichedImage
	}
	return r.Image
}

// BreweryRef is one distinct brewery as exposed by the brewery facet.
type BreweryRef struct {
	Name     string `json:"name" bson:"name"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
}
