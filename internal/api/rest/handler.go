// Package rest exposes the catalog over HTTP/JSON.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"beerdex/internal/auth"
	"beerdex/internal/catalog"
	"beerdex/internal/server"
	"beerdex/internal/storage"
)

// Default body size limit
const DefaultMaxBodySize = 1 << 20 // 1MB

// Default request timeouts
const (
	DefaultRequestTimeout = 30 * time.Second
	LongRequestTimeout    = 60 * time.Second // For grouped queries and admin operations
)

// APIError represents a structured error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeUnavailable   = "UNAVAILABLE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

type Handler struct {
	catalog catalog.Service
	tokens  *auth.TokenService

	defaultLimit int
	maxLimit     int
}

// Options tunes pagination defaults. Zero values use the built-ins.
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// NewHandler creates the REST handler. tokens may be nil; the auth and admin
// routes are only registered when it is set.
func NewHandler(svc catalog.Service, tokens *auth.TokenService, opts Options) *Handler {
	if svc == nil {
		panic("catalog service cannot be nil")
	}

	h := &Handler{
		catalog:      svc,
		tokens:       tokens,
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
	}
	if h.defaultLimit <= 0 {
		h.defaultLimit = 20
	}
	if h.maxLimit < h.defaultLimit {
		h.maxLimit = 100
	}
	return h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Catalog Operations
	// Note: Request ID and panic recovery are handled by the unified server middleware
	mux.HandleFunc("GET /api/v1/beers", withTimeout(h.handleGroupedBeers, LongRequestTimeout))
	mux.HandleFunc("GET /api/v1/listings", withTimeout(h.handleListings, DefaultRequestTimeout))

	// Facets
	mux.HandleFunc("GET /api/v1/styles", withTimeout(h.handleStyles, DefaultRequestTimeout))
	mux.HandleFunc("GET /api/v1/breweries", withTimeout(h.handleBreweries, DefaultRequestTimeout))
	mux.HandleFunc("GET /api/v1/stats", withTimeout(h.handleStats, DefaultRequestTimeout))

	// Auth and Admin Operations, registered only when auth is configured
	if h.tokens != nil {
		mux.HandleFunc("POST /auth/v1/token", withTimeout(maxBodySize(h.handleToken, DefaultMaxBodySize), DefaultRequestTimeout))
		mux.HandleFunc("POST /admin/v1/reindex", withTimeout(h.adminOnly(h.handleReindex), LongRequestTimeout))
		mux.HandleFunc("GET /admin/v1/health", withTimeout(h.adminOnly(h.handleAdminHealth), DefaultRequestTimeout))
	}

	// Health Check (no auth, minimal timeout)
	mux.HandleFunc("GET /health", withTimeout(h.handleHealth, 5*time.Second))
}

func (h *Handler) adminOnly(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.tokens.Middleware(auth.RequireRole(auth.RoleAdmin, handler)).ServeHTTP(w, r)
	}
}

// writeError writes a structured JSON error response
func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{Code: code, Message: message}); err != nil {
		slog.Warn("Failed to encode error response", "error", err)
	}
}

// writeCatalogError maps pipeline errors to an HTTP response. Client
// cancellations get 499 instead of 500.
func writeCatalogError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, context.Canceled) {
		w.WriteHeader(499) // Client Closed Request
		return
	}
	if errors.Is(err, storage.ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, message)
		return
	}
	if errors.Is(err, storage.ErrInvalidQuery) {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
		return
	}
	slog.Error(message, "error", err, "request_id", server.GetRequestID(r.Context()))
	writeError(w, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// maxBodySize wraps a handler with request body size limiting
func maxBodySize(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

// withTimeout wraps a handler with a context timeout
func withTimeout(next http.HandlerFunc, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}
