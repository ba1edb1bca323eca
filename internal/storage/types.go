package storage

import (
	"context"
	"errors"
	"time"

	"beerdex/pkg/model"
)

var (
	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("listing store unavailable")
	// ErrInvalidQuery is returned when a query is malformed.
	ErrInvalidQuery = errors.New("invalid query")
)

// FilterOp defines the supported filter operators.
type FilterOp string

const (
	OpEq          FilterOp = "=="
	OpNe          FilterOp = "!="
	OpGt          FilterOp = ">"
	OpGte         FilterOp = ">="
	OpLt          FilterOp = "<"
	OpLte         FilterOp = "<="
	OpIn          FilterOp = "in"
	OpContains    FilterOp = "contains"     // substring, case-insensitive
	OpNotContains FilterOp = "not_contains" // negated substring
	OpExists      FilterOp = "exists"       // field present and non-null (Value: bool)
)

// IsValid checks if the operator is valid.
func (op FilterOp) IsValid() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpContains, OpNotContains, OpExists:
		return true
	}
	return false
}

// Filter is one predicate pushed down to the listing store.
type Filter struct {
	Field string      `json:"field"`
	Op    FilterOp    `json:"op"`
	Value interface{} `json:"value"`
}

// Filters is a slice of Filter, combined with AND semantics.
type Filters []Filter

// SearchFilter matches when any of Fields contains the (already normalized)
// substring, case-insensitively. It is pushed down as an OR across fields and
// therefore kept apart from the AND-combined Filters.
type SearchFilter struct {
	Fields []string
	Term   string
}

// Order is a sort directive applied store-side.
type Order struct {
	Field      string
	Descending bool
}

// Query is one bounded read against the listing store. Offset/Limit express
// the chunked ranged reads the store's row cap forces on callers.
type Query struct {
	Filters Filters
	Search  *SearchFilter
	OrderBy []Order
	Offset  int64
	Limit   int64
}

// EventType represents the type of listing change.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is one listing change observed on the store's change feed.
type Event struct {
	Type      EventType            `json:"type"`
	Listing   *model.ListingRecord `json:"listing,omitempty"` // nil for delete
	SourceID  string               `json:"source_id,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// ListingStore is the read-side contract over the scraped listing collection.
// The scraper and enrichment pipelines write to it out-of-band; this service
// only reads and watches.
type ListingStore interface {
	// Count returns the number of listings matching the filters.
	Count(ctx context.Context, filters Filters, search *SearchFilter) (int64, error)

	// Find executes a bounded, ordered read. Implementations must preserve
	// the requested order within the returned slice.
	Find(ctx context.Context, q Query) ([]model.ListingRecord, error)

	// Distinct returns the distinct non-empty values of a field.
	Distinct(ctx context.Context, field string, filters Filters) ([]string, error)

	// CountByField returns value -> occurrence count for a field, skipping
	// documents where the field is empty or missing.
	CountByField(ctx context.Context, field string, filters Filters) (map[string]int64, error)

	// BreweryRefs returns the distinct breweries with a location when one is
	// known for any of the brewery's listings.
	BreweryRefs(ctx context.Context) ([]model.BreweryRef, error)

	// LatestFirstSeen returns the most recent first-seen timestamp across all
	// listings, or the zero time when the collection is empty.
	LatestFirstSeen(ctx context.Context) (time.Time, error)

	// Watch streams listing change events until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)

	// EnsureIndexes creates the indexes the query paths rely on.
	EnsureIndexes(ctx context.Context) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
