package events

import (
	"context"
	"log/slog"
	"time"

	"beerdex/internal/storage"
)

const watchRetryDelay = 5 * time.Second

// Watcher bridges the listing store's change feed onto the update bus.
type Watcher struct {
	store  storage.ListingStore
	bus    Bus
	logger *slog.Logger
}

// NewWatcher creates a Watcher publishing store changes to bus.
func NewWatcher(store storage.ListingStore, bus Bus, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{store: store, bus: bus, logger: logger}
}

// Run consumes the change feed until ctx is cancelled, re-establishing the
// feed after transient failures.
func (w *Watcher) Run(ctx context.Context) {
	for {
		if err := w.watch(ctx); err != nil {
			w.logger.Warn("Change feed interrupted, retrying",
				"error", err,
				"retry_in", watchRetryDelay,
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(watchRetryDelay):
		}
	}
}

func (w *Watcher) watch(ctx context.Context) error {
	feed, err := w.store.Watch(ctx)
	if err != nil {
		return err
	}
	w.logger.Info("Watching listing change feed")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-feed:
			if !ok {
				return nil
			}
			update := toUpdate(event)
			if err := w.bus.Publish(ctx, update); err != nil {
				w.logger.Warn("Failed to publish catalog update",
					"type", update.Type,
					"source_id", update.SourceID,
					"error", err,
				)
			}
		}
	}
}

func toUpdate(event storage.Event) CatalogUpdate {
	update := CatalogUpdate{
		SourceID:   event.SourceID,
		OccurredAt: event.Timestamp,
	}

	switch event.Type {
	case storage.EventInsert:
		update.Type = UpdateCreated
	case storage.EventDelete:
		update.Type = UpdateRemoved
	default:
		update.Type = UpdateChanged
	}

	if event.Listing != nil {
		update.SourceID = event.Listing.SourceID
		update.CanonicalID = event.Listing.CanonicalID
		update.Shop = event.Listing.Shop
		update.Name = event.Listing.Name
	}
	return update
}
