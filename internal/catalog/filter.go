package catalog

import "beerdex/pkg/model"

// FilterByShops retains only groups carried by every selected shop. An empty
// selection keeps everything.
//
// "Every" is the point: selecting shops A and B means "beers I could buy at
// both A and B", and the retained groups still list all shops that carry
// them, including unselected ones.
func FilterByShops(groups []*model.BeerGroup, shops []string) []*model.BeerGroup {
	if len(shops) == 0 {
		return groups
	}

	filtered := groups[:0:0]
	for _, g := range groups {
		if hasAllShops(g, shops) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// hasAllShops reports whether every selected shop carries at least one member
// of the group. Record shop names are normalized before comparing, so a shop
// stored with decomposed accents still matches its composed spelling.
func hasAllShops(g *model.BeerGroup, shops []string) bool {
	carried := make(map[string]struct{}, len(g.Items))
	for i := range g.Items {
		carried[NormalizeText(g.Items[i].Shop)] = struct{}{}
	}
	for _, shop := range shops {
		if _, ok := carried[shop]; !ok {
			return false
		}
	}
	return true
}
