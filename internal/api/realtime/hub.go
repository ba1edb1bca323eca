// Package realtime pushes catalog updates to browsers over websockets.
package realtime

import (
	"context"
	"sync"

	"beerdex/internal/events"
)

// Hub maintains the set of active clients and broadcasts catalog updates to
// them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound updates to fan out.
	broadcast chan events.CatalogUpdate

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan events.CatalogUpdate),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case update := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if !client.wants(update) {
					continue
				}
				select {
				case client.send <- update:
				default:
					// Slow client: drop the update rather than stall the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast fans an update out to all connected clients.
func (h *Hub) Broadcast(update events.CatalogUpdate) {
	h.broadcast <- update
}
