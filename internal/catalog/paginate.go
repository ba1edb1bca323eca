package catalog

import "beerdex/pkg/model"

// Pagination describes one page of a result sequence.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Paginate slices the sorted group sequence into the requested 1-based page,
// clipped to bounds. An out-of-range page yields an empty page, not an error.
func Paginate(groups []*model.BeerGroup, page, limit int) ([]*model.BeerGroup, Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(groups)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return groups[start:end], Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int64(total),
		TotalPages: totalPages,
	}
}
