package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"beerdex/internal/catalog"
	"beerdex/pkg/model"
)

// decodeCatalogRequest parses and validates the query string into a catalog
// request. Ranges must be coherent and stock/set modes recognized; sort and
// paging are forgiving and fall back to defaults instead of failing.
func (h *Handler) decodeCatalogRequest(r *http.Request) (catalog.Request, error) {
	var params catalogParams
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&params, r.URL.Query()); err != nil {
		return catalog.Request{}, fmt.Errorf("invalid query parameters: %w", err)
	}

	if err := validateParams(params); err != nil {
		return catalog.Request{}, err
	}

	// An unknown sort criterion means newest, same as none at all.
	sort := model.SortKey(params.Sort)
	if !sort.IsValid() {
		sort = model.SortNewest
	}

	page := intParam(r.URL.Query().Get("page"), 1)
	limit := intParam(r.URL.Query().Get("limit"), h.defaultLimit)
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	return catalog.Request{
		Options: model.ListingOptions{
			Search:    params.Search,
			MinAbv:    params.MinAbv,
			MaxAbv:    params.MaxAbv,
			MinIbu:    params.MinIbu,
			MaxIbu:    params.MaxIbu,
			MinRating: params.MinRating,
			Styles:    splitList(params.Styles),
			Breweries: splitList(params.Breweries),
			Stock:     model.StockMode(params.Stock),
			Set:       model.SetMode(params.Set),
			Shops:     splitList(params.Shops),
		},
		Sort:  sort,
		Page:  page,
		Limit: limit,
	}, nil
}

func validateParams(params catalogParams) error {
	if params.MinAbv < 0 || params.MinIbu < 0 || params.MinRating < 0 {
		return fmt.Errorf("numeric bounds must not be negative")
	}
	if params.MaxAbv != 0 && params.MaxAbv < params.MinAbv {
		return fmt.Errorf("maxAbv must not be below minAbv")
	}
	if params.MaxIbu != 0 && params.MaxIbu < params.MinIbu {
		return fmt.Errorf("maxIbu must not be below minIbu")
	}
	if !model.StockMode(params.Stock).IsValid() {
		return fmt.Errorf("unknown stock mode %q", params.Stock)
	}
	if !model.SetMode(params.Set).IsValid() {
		return fmt.Errorf("unknown set mode %q", params.Set)
	}
	return nil
}

// intParam parses a positive integer parameter leniently: malformed or
// non-positive values fall back instead of failing the request.
func intParam(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// splitList splits a comma-separated parameter into trimmed non-empty tokens.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
