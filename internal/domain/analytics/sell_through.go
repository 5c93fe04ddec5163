package analytics

import (
	"cmp"
	"slices"
)

// SellThrough is the share of a category's acquired units that sold
type SellThrough struct {
	Category string  `json:"category"`
	Acquired int     `json:"acquired"`
	Sold     int     `json:"sold"`
	Rate     float64 `json:"rate"`
}

// SellThroughRates divides units sold in range by units acquired in range,
// per category. A category with sales but no acquisitions in the window uses
// a denominator of 1, so its rate is the raw sold count and may exceed 1.
// Output is ordered by rate descending, then category name.
func SellThroughRates(acquired, sold []InventoryRecord) []SellThrough {
	byCategory := make(map[string]*SellThrough)
	get := func(category string) *SellThrough {
		name := normalizeCategory(category)
		st, ok := byCategory[name]
		if !ok {
			st = &SellThrough{Category: name}
			byCategory[name] = st
		}
		return st
	}

	for _, r := range acquired {
		get(r.Category).Acquired++
	}
	for _, r := range sold {
		get(r.Category).Sold++
	}

	out := make([]SellThrough, 0, len(byCategory))
	for _, st := range byCategory {
		denominator := st.Acquired
		if denominator < 1 {
			denominator = 1
		}
		st.Rate = float64(st.Sold) / float64(denominator)
		out = append(out, *st)
	}
	slices.SortFunc(out, func(a, b SellThrough) int {
		if c := cmp.Compare(b.Rate, a.Rate); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out
}
