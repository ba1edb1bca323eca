package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// natsConnectFunc allows test injection.
var natsConnectFunc = nats.Connect

// NATSBus is a Bus backed by an external NATS server, for multi-instance
// deployments where every instance must see updates from the shared feed.
type NATSBus struct {
	conn    *nats.Conn
	subject string
}

// NewNATSBus connects to the NATS server at url and publishes on subject.
func NewNATSBus(url, subject string) (*NATSBus, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := natsConnectFunc(url,
		nats.Name("beerdex"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATSBus{conn: nc, subject: subject}, nil
}

// Publish sends the update to the bus subject as JSON.
func (b *NATSBus) Publish(_ context.Context, update CatalogUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("encode catalog update: %w", err)
	}
	if err := b.conn.Publish(b.subject, data); err != nil {
		return fmt.Errorf("publish catalog update: %w", err)
	}
	return nil
}

// Subscribe registers a consumer for the bus subject. Malformed messages are
// logged and skipped.
func (b *NATSBus) Subscribe(buffer int) (<-chan CatalogUpdate, func(), error) {
	if buffer <= 0 {
		buffer = 16
	}

	ch := make(chan CatalogUpdate, buffer)
	sub, err := b.conn.Subscribe(b.subject, func(msg *nats.Msg) {
		var update CatalogUpdate
		if err := json.Unmarshal(msg.Data, &update); err != nil {
			slog.Warn("Skipping malformed catalog update", "error", err)
			return
		}
		select {
		case ch <- update:
		default:
			slog.Warn("Dropping catalog update for slow subscriber", "subject", b.subject)
		}
	})
	if err != nil {
		return nil, nil, fmt.Errorf("subscribe to %s: %w", b.subject, err)
	}

	cancel := func() {
		if err := sub.Unsubscribe(); err != nil {
			slog.Warn("Failed to unsubscribe from catalog updates", "error", err)
		}
		close(ch)
	}
	return ch, cancel, nil
}

// Close drains and closes the NATS connection.
func (b *NATSBus) Close() error {
	if b.conn == nil {
		return nil
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
		return fmt.Errorf("drain nats connection: %w", err)
	}
	return nil
}
