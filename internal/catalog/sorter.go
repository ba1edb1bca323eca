package catalog

import (
	"sort"

	"beerdex/pkg/model"
)

// SortGroups orders groups by the requested criterion. Unknown or empty keys
// fall back to newest-first. The sort is stable so that ties keep their
// pre-sort order and pagination stays deterministic.
func SortGroups(groups []*model.BeerGroup, key model.SortKey) {
	var less func(a, b *model.BeerGroup) bool

	switch key {
	case model.SortPriceAsc:
		// Groups with no priced member (min price 0) sort last.
		less = func(a, b *model.BeerGroup) bool {
			if (a.MinPrice == 0) != (b.MinPrice == 0) {
				return b.MinPrice == 0
			}
			return a.MinPrice < b.MinPrice
		}
	case model.SortPriceDesc:
		// Unpriced groups get no special-casing here, unlike price_asc.
		// The asymmetry is observed production behavior, kept as-is pending
		// product confirmation.
		less = func(a, b *model.BeerGroup) bool {
			return a.MaxPrice > b.MaxPrice
		}
	case model.SortAbvDesc:
		less = func(a, b *model.BeerGroup) bool {
			return a.Abv > b.Abv
		}
	case model.SortRatingDesc:
		less = func(a, b *model.BeerGroup) bool {
			return a.Rating > b.Rating
		}
	case model.SortNameAsc:
		less = func(a, b *model.BeerGroup) bool {
			return a.Name < b.Name
		}
	default: // SortNewest
		less = func(a, b *model.BeerGroup) bool {
			return a.NewestSeen.After(b.NewestSeen)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return less(groups[i], groups[j])
	})
}
