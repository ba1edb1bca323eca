package rest

import (
	"net/http"
)

// handleGroupedBeers serves the grouped price comparison view.
func (h *Handler) handleGroupedBeers(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeCatalogRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	result, err := h.catalog.Grouped(r.Context(), req)
	if err != nil {
		writeCatalogError(w, r, err, "Failed to load grouped catalog")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleListings serves the flat per-shop view.
func (h *Handler) handleListings(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeCatalogRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	result, err := h.catalog.Listings(r.Context(), req)
	if err != nil {
		writeCatalogError(w, r, err, "Failed to load listings")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
