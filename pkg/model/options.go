package model

// SortKey selects the ordering of grouped (or flat) catalog results.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortAbvDesc    SortKey = "abv_desc"
	SortRatingDesc SortKey = "rating_desc"
	SortNameAsc    SortKey = "name_asc"
)

// IsValid checks if the sort key is a known ordering.
func (s SortKey) IsValid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortAbvDesc, SortRatingDesc, SortNameAsc:
		return true
	}
	return false
}

// StockMode restricts listings by availability.
type StockMode string

const (
	StockAny     StockMode = ""
	StockInStock StockMode = "in_stock"
	StockSoldOut StockMode = "sold_out"
)

// IsValid checks if the stock mode is recognized.
func (m StockMode) IsValid() bool {
	switch m {
	case StockAny, StockInStock, StockSoldOut:
		return true
	}
	return false
}

// SetMode restricts listings by whether they are bundle sets.
type SetMode string

const (
	SetAny        SetMode = ""
	SetIndividual SetMode = "individual"
	SetOnly       SetMode = "set"
)

// IsValid checks if the set mode is recognized.
func (m SetMode) IsValid() bool {
	switch m {
	case SetAny, SetIndividual, SetOnly:
		return true
	}
	return false
}

// ListingOptions is the user-facing filter set over the catalog. List-valued
// fields hold trimmed, non-empty tokens; numeric bounds use 0 as "unset".
type ListingOptions struct {
	Search string

	MinAbv    float64
	MaxAbv    float64
	MinIbu    float64
	MaxIbu    float64
	MinRating float64

	Styles    []string
	Breweries []string

	Stock StockMode
	Set   SetMode

	// Shops is evaluated after grouping: a group qualifies only when every
	// selected shop carries it. It is never pushed down to the store.
	Shops []string
}
