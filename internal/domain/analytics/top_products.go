package analytics

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// DefaultTopProductsLimit is the ranking size when none is requested
const DefaultTopProductsLimit = 10

// ProductPerformance is the sales outcome of one product
type ProductPerformance struct {
	Rank            int       `json:"rank"`
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	Category        string    `json:"category"`
	Channels        []Channel `json:"channels"`
	UnitsSold       int       `json:"units_sold"`
	Revenue         int64     `json:"revenue"`
	Cost            int64     `json:"cost"`
	Profit          int64     `json:"profit"`
	AverageProfit   int64     `json:"average_profit"`
	MedianSoldPrice int64     `json:"median_sold_price"`
}

// TopProducts groups sold records by product and ranks them by total profit,
// descending, keeping the first limit entries. Ties keep the order in which
// products first appear in the input.
func TopProducts(sold []InventoryRecord, limit int) []ProductPerformance {
	if limit <= 0 {
		limit = DefaultTopProductsLimit
	}

	type acc struct {
		perf     ProductPerformance
		channels map[Channel]struct{}
		prices   []int64
	}
	byProduct := make(map[uuid.UUID]*acc)
	order := make([]uuid.UUID, 0)

	for _, r := range sold {
		a, ok := byProduct[r.ProductID]
		if !ok {
			a = &acc{
				perf: ProductPerformance{
					ProductID:   r.ProductID,
					ProductName: r.ProductName,
					Category:    normalizeCategory(r.Category),
				},
				channels: make(map[Channel]struct{}),
			}
			byProduct[r.ProductID] = a
			order = append(order, r.ProductID)
		}
		a.perf.UnitsSold++
		a.perf.Revenue += r.Price
		a.perf.Cost += r.TotalCost()
		a.channels[r.Channel] = struct{}{}
		a.prices = append(a.prices, r.Price)
	}

	out := make([]ProductPerformance, 0, len(order))
	for _, id := range order {
		a := byProduct[id]
		p := a.perf
		p.Profit = p.Revenue - p.Cost
		p.AverageProfit = Average(p.Profit, p.UnitsSold)
		p.MedianSoldPrice = Median(a.prices)
		p.Channels = make([]Channel, 0, len(a.channels))
		for _, c := range AllChannels() {
			if _, ok := a.channels[c]; ok {
				p.Channels = append(p.Channels, c)
			}
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b ProductPerformance) int {
		return cmp.Compare(b.Profit, a.Profit)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
