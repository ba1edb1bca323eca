package events

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// LocalBus is an in-process Bus for single-instance deployments. It avoids
// serialization entirely and delivers updates over buffered channels.
type LocalBus struct {
	mu     sync.Mutex
	subs   map[int]chan CatalogUpdate
	nextID int
	closed bool
}

// NewLocalBus creates an in-process bus.
func NewLocalBus() *LocalBus {
	return &LocalBus{
		subs: make(map[int]chan CatalogUpdate),
	}
}

// Publish delivers the update to every subscriber. Full subscriber buffers
// drop the delivery rather than block the publisher.
func (b *LocalBus) Publish(_ context.Context, update CatalogUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return io.EOF
	}

	for id, ch := range b.subs {
		select {
		case ch <- update:
		default:
			slog.Warn("Dropping catalog update for slow subscriber", "subscriber", id)
		}
	}
	return nil
}

// Subscribe registers a consumer channel with the given buffer size.
func (b *LocalBus) Subscribe(buffer int) (<-chan CatalogUpdate, func(), error) {
	if buffer <= 0 {
		buffer = 16
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, nil, io.EOF
	}

	id := b.nextID
	b.nextID++
	ch := make(chan CatalogUpdate, buffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel, nil
}

// Close shuts the bus down and closes all subscriber channels.
func (b *LocalBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	return nil
}
