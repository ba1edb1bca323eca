package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"beerdex/internal/auth"
)

// handleToken exchanges the configured admin key for a bearer token.
func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body")
		return
	}

	token, err := h.tokens.ExchangeAdminKey(req.AdminKey)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid admin key")
			return
		}
		writeCatalogError(w, r, err, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// handleReindex recreates the store indexes.
func (h *Handler) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Reindex(r.Context()); err != nil {
		writeCatalogError(w, r, err, "Failed to rebuild indexes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reindexed"})
}

// handleAdminHealth reports store reachability by running a cheap query.
func (h *Handler) handleAdminHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalog.Stats(r.Context()); err != nil {
		writeCatalogError(w, r, err, "Catalog store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// handleHealth is the unauthenticated liveness endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
