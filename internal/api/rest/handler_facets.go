package rest

import (
	"net/http"
)

func (h *Handler) handleStyles(w http.ResponseWriter, r *http.Request) {
	styles, err := h.catalog.Styles(r.Context())
	if err != nil {
		writeCatalogError(w, r, err, "Failed to load style facet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"styles": styles})
}

func (h *Handler) handleBreweries(w http.ResponseWriter, r *http.Request) {
	breweries, err := h.catalog.Breweries(r.Context())
	if err != nil {
		writeCatalogError(w, r, err, "Failed to load brewery facet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"breweries": breweries})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		writeCatalogError(w, r, err, "Failed to load catalog stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
