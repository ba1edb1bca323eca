package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"beerdex/internal/storage"
	"beerdex/pkg/model"
)

// DefaultChunkSize matches the store's maximum rows per request.
const DefaultChunkSize = 1000

// DefaultChunkTimeout bounds a single ranged read so one hanging chunk
// cannot stall page rendering.
const DefaultChunkTimeout = 15 * time.Second

// fetchOrder is the fixed store-side sort for the grouped pipeline:
// descending first-seen, nulls last. The grouping engine's representative
// selection ("first member encountered wins") is only correct under this
// global ordering, which the fetcher preserves across chunk boundaries by
// concatenating chunks in request-index order.
var fetchOrder = []storage.Order{{Field: "first_seen", Descending: true}}

// Fetcher retrieves complete filtered record sets from a store that caps the
// number of rows per request, by fanning out ranged reads and reassembling
// them in order.
type Fetcher struct {
	store        storage.ListingStore
	chunkSize    int64
	chunkTimeout time.Duration
	logger       *slog.Logger
}

// NewFetcher creates a fetcher with the given chunking parameters.
// Zero values fall back to the defaults.
func NewFetcher(store storage.ListingStore, chunkSize int64, chunkTimeout time.Duration, logger *slog.Logger) *Fetcher {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkTimeout <= 0 {
		chunkTimeout = DefaultChunkTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{store: store, chunkSize: chunkSize, chunkTimeout: chunkTimeout, logger: logger}
}

// FetchAll returns every record matching the pre-filter set, sorted by
// descending first-seen across the whole result.
//
// A failed count aborts: without the total there is no chunk plan. A failed
// chunk does not: it is logged and contributes nothing, so the caller still
// gets a page built from the chunks that did arrive.
func (f *Fetcher) FetchAll(ctx context.Context, pre storage.Filters, search *storage.SearchFilter) ([]model.ListingRecord, error) {
	total, err := f.store.Count(ctx, pre, search)
	if err != nil {
		return nil, fmt.Errorf("count matching listings: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	chunkCount := int((total + f.chunkSize - 1) / f.chunkSize)
	chunks := make([][]model.ListingRecord, chunkCount)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < chunkCount; i++ {
		g.Go(func() error {
			offset := int64(i) * f.chunkSize

			chunkCtx, cancel := context.WithTimeout(gctx, f.chunkTimeout)
			defer cancel()

			records, err := f.store.Find(chunkCtx, storage.Query{
				Filters: pre,
				Search:  search,
				OrderBy: fetchOrder,
				Offset:  offset,
				Limit:   f.chunkSize,
			})
			if err != nil {
				// Best-effort degradation: a partial catalog beats an error
				// page. The chunk stays empty.
				f.logger.Warn("Chunk fetch failed",
					"offset", offset,
					"limit", f.chunkSize,
					"error", err,
				)
				return nil
			}
			chunks[i] = records
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Request-index order, never completion order: each chunk is internally
	// sorted by the store, and ascending offsets stitch them back into one
	// globally non-increasing first-seen sequence.
	records := make([]model.ListingRecord, 0, total)
	for _, chunk := range chunks {
		records = append(records, chunk...)
	}
	return records, nil
}
