package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beerdex/internal/api/realtime"
	"beerdex/internal/api/rest"
	"beerdex/internal/auth"
	"beerdex/internal/catalog"
	"beerdex/internal/config"
	"beerdex/internal/events"
	"beerdex/internal/logging"
	"beerdex/internal/server"
	storagemongo "beerdex/internal/storage/mongo"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Initialize(cfg.Logging)
	slog.Info("Starting beerdex catalog service")

	// 2. Connect the listing store
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storagemongo.New(ctx, cfg.Storage.URI, cfg.Storage.Database, cfg.Storage.Collection)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect listing store: %v", err)
	}

	// 3. Catalog engine
	engine := catalog.NewEngine(store, cfg.Catalog.ChunkSize, cfg.Catalog.ChunkTimeout, slog.Default())

	// 4. Update bus + change feed watcher + realtime push
	bus, err := newBus(cfg.Events)
	if err != nil {
		log.Fatalf("Failed to create update bus: %v", err)
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	watcher := events.NewWatcher(store, bus, slog.Default())
	go watcher.Run(bgCtx)

	rtServer := realtime.NewServer(bus, cfg.Server.AllowedOrigins, slog.Default())
	if err := rtServer.Start(bgCtx); err != nil {
		log.Fatalf("Failed to start realtime server: %v", err)
	}

	// 5. REST surface
	var tokens *auth.TokenService
	if cfg.Auth.Enabled {
		tokens = auth.NewTokenService(cfg.Auth)
		slog.Info("Admin endpoints enabled")
	}

	handler := rest.NewHandler(engine, tokens, rest.Options{
		DefaultLimit: cfg.Catalog.DefaultLimit,
		MaxLimit:     cfg.Catalog.MaxLimit,
	})

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	rtServer.RegisterRoutes(mux)

	srv := server.New(cfg.Server, mux, slog.Default())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// 6. Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			slog.Error("HTTP server failed", "error", err)
		}
	}

	// Graceful shutdown: stop background feeds first, then drain HTTP.
	bgCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown incomplete", "error", err)
	}
	if err := bus.Close(); err != nil {
		slog.Warn("Update bus close failed", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		slog.Warn("Listing store close failed", "error", err)
	}

	slog.Info("Service stopped")
}

func newBus(cfg config.EventsConfig) (events.Bus, error) {
	if cfg.Mode == "nats" {
		return events.NewNATSBus(cfg.NatsURL, cfg.Subject)
	}
	return events.NewLocalBus(), nil
}
