package catalog

import (
	"log/slog"

	"beerdex/pkg/model"
)

// Group partitions records into BeerGroups keyed by canonical identity, in a
// single forward pass.
//
// Precondition: records arrive in globally non-increasing first-seen order
// (the fetcher guarantees this). The first record seen for a key is therefore
// the freshest member, and it stays the group's representative without any
// re-scanning. If the store's sort contract is
// ever relaxed, this must switch to an explicit max-first-seen comparison per
// incoming record.
func Group(records []model.ListingRecord) []*model.BeerGroup {
	byID := make(map[string]*model.BeerGroup)
	var groups []*model.BeerGroup

	for i := range records {
		rec := &records[i]
		if !rec.Groupable() {
			// The structural pre-filter should have excluded these; reaching
			// here means the store query contract was violated.
			slog.Warn("Ungroupable record in grouped fetch", "source_id", rec.SourceID, "shop", rec.Shop)
			continue
		}

		group, ok := byID[rec.CanonicalID]
		if !ok {
			group = &model.BeerGroup{
				CanonicalID:     rec.CanonicalID,
				Name:            rec.Name,
				Image:           rec.DisplayImage(),
				Style:           rec.Style,
				Abv:             rec.Abv,
				Ibu:             rec.Ibu,
				Rating:          rec.Rating,
				RatingCount:     rec.RatingCount,
				IsSet:           rec.IsSet,
				BreweryName:     rec.BreweryName,
				BreweryLocation: rec.BreweryLocation,
				BreweryLogo:     rec.BreweryLogo,
				BreweryType:     rec.BreweryType,
			}
			byID[rec.CanonicalID] = group
			groups = append(groups, group)
		}

		group.Items = append(group.Items, *rec)

		if rec.PriceValue != nil {
			p := *rec.PriceValue
			if group.MinPrice == 0 || p < group.MinPrice {
				group.MinPrice = p
			}
			if p > group.MaxPrice {
				group.MaxPrice = p
			}
		}
		if rec.FirstSeen.After(group.NewestSeen) {
			group.NewestSeen = rec.FirstSeen
		}
	}

	return groups
}

// CountShops tallies fetched records per shop. The tally runs before the shop
// post-filter on purpose: the sidebar shows how many listings each shop would
// contribute under the other active filters, so the user can see what adding
// a shop to the selection would gain.
func CountShops(records []model.ListingRecord) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		counts[NormalizeText(records[i].Shop)]++
	}
	return counts
}
