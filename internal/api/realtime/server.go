package realtime

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"beerdex/internal/events"
)

// Server ties the hub to an update bus subscription and exposes the
// websocket endpoint.
type Server struct {
	hub      *Hub
	bus      events.Bus
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates the realtime server. allowedOrigins restricts browser
// origins; empty allows all.
func NewServer(bus events.Bus, allowedOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		hub:      NewHub(),
		bus:      bus,
		upgrader: newUpgrader(allowedOrigins),
		logger:   logger,
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /realtime/v1/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.hub, s.upgrader, w, r)
	})
}

// Start runs the hub and the bus-to-hub forwarder until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	updates, cancel, err := s.bus.Subscribe(256)
	if err != nil {
		return err
	}

	go s.hub.Run(ctx)

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					s.logger.Info("Update bus closed, stopping realtime forwarder")
					return
				}
				s.hub.Broadcast(update)
			}
		}
	}()

	return nil
}
