// Package events distributes catalog update notifications from the listing
// store's change feed to in-process consumers, either directly or via NATS.
package events

import (
	"context"
	"time"
)

// UpdateType classifies a catalog update.
type UpdateType string

const (
	UpdateCreated UpdateType = "created"
	UpdateChanged UpdateType = "changed"
	UpdateRemoved UpdateType = "removed"
)

// CatalogUpdate is one listing-level change pushed to subscribers.
type CatalogUpdate struct {
	Type        UpdateType `json:"type"`
	SourceID    string     `json:"sourceId,omitempty"`
	CanonicalID string     `json:"canonicalId,omitempty"`
	Shop        string     `json:"shop,omitempty"`
	Name        string     `json:"name,omitempty"`
	OccurredAt  time.Time  `json:"occurredAt"`
}

// Bus fans catalog updates out to subscribers. Publish never blocks on slow
// subscribers; deliveries to a full subscriber buffer are dropped.
type Bus interface {
	// Publish delivers an update to all current subscribers.
	Publish(ctx context.Context, update CatalogUpdate) error

	// Subscribe registers a consumer with the given buffer size. The returned
	// cancel func must be called to release the subscription; the channel is
	// closed afterwards.
	Subscribe(buffer int) (<-chan CatalogUpdate, func(), error)

	// Close shuts the bus down. Subscriber channels are closed.
	Close() error
}
