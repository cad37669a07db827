package extractor

import (
	"sort"

	"github.com/user/travel-deals-service/internal/entity"
)

// Aggregate sorts entries by numeric price, keeping discovery order among equal
// prices and placing unparseable prices last, then groups them by date range in
// order of first appearance. The input slice is left untouched.
func Aggregate(entries []entity.PriceGridEntry) []entity.PriceGroup {
	sorted := SortByPrice(entries)

	var groups []entity.PriceGroup
	index := make(map[string]int)
	for _, e := range sorted {
		i, ok := index[e.DateRange]
		if !ok {
			i = len(groups)
			index[e.DateRange] = i
			groups = append(groups, entity.PriceGroup{DateRange: e.DateRange})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// SortByPrice returns a sorted copy of entries.
func SortByPrice(entries []entity.PriceGridEntry) []entity.PriceGridEntry {
	sorted := make([]entity.PriceGridEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, okI := ParsePrice(sorted[i].Price)
		pj, okJ := ParsePrice(sorted[j].Price)
		switch {
		case okI && okJ:
			return pi < pj
		default:
			return okI && !okJ
		}
	})
	return sorted
}

// GroupMap flattens groups into a map keyed by date range.
func GroupMap(groups []entity.PriceGroup) map[string][]entity.PriceGridEntry {
	m := make(map[string][]entity.PriceGridEntry, len(groups))
	for _, g := range groups {
		m[g.DateRange] = g.Entries
	}
	return m
}
