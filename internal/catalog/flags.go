package catalog

import "strings"

// flagTable maps location substrings to flag emoji, checked in order.
// Multi-word entries come before the countries they could shadow.
var flagTable = []struct {
	match string
	flag  string
}{
	{"japan", "🇯🇵"},
	{"united states", "🇺🇸"},
	{"usa", "🇺🇸"},
	{"america", "🇺🇸"},
	{"canada", "🇨🇦"},
	{"united kingdom", "🇬🇧"},
	{"england", "🇬🇧"},
	{"scotland", "🇬🇧"},
	{"wales", "🇬🇧"},
	{"australia", "🇦🇺"},
	{"new zealand", "🇳🇿"},
	{"germany", "🇩🇪"},
	{"belgium", "🇧🇪"},
	{"france", "🇫🇷"},
	{"italy", "🇮🇹"},
	{"spain", "🇪🇸"},
	{"netherlands", "🇳🇱"},
	{"denmark", "🇩🇰"},
	{"norway", "🇳🇴"},
	{"sweden", "🇸🇪"},
	{"poland", "🇵🇱"},
	{"czech", "🇨🇿"},
	{"ireland", "🇮🇪"},
	{"china", "🇨🇳"},
	{"hong kong", "🇭🇰"},
	{"taiwan", "🇹🇼"},
	{"korea", "🇰🇷"},
	{"mexico", "🇲🇽"},
	{"brazil", "🇧🇷"},
	{"estonia", "🇪🇪"},
	{"latvia", "🇱🇻"},
	{"lithuania", "🇱🇹"},
}

// countryFlag maps a free-text brewery location to a flag emoji, falling back
// to the white flag for unknown or empty locations.
func countryFlag(location string) string {
	loc := strings.ToLower(location)
	for _, entry := range flagTable {
		if strings.Contains(loc, entry.match) {
			return entry.flag
		}
	}
	return "🏳️"
}
