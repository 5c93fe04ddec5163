package analytics

import "github.com/google/uuid"

// PricePoint is one sold unit on the price-vs-margin scatter
type PricePoint struct {
	ItemID         uuid.UUID `json:"item_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Category       string    `json:"category"`
	Channel        Channel   `json:"channel"`
	Price          int64     `json:"price"`
	Profit         int64     `json:"profit"`
	Margin         float64   `json:"margin"`
	BelowMinMargin bool      `json:"below_min_margin"`
}

// PriceMarginSample emits one point per sold record in input order. A
// positive limit keeps only the first limit points; it is a prefix, not a
// representative sample. minMargin only sets BelowMinMargin.
func PriceMarginSample(sold []InventoryRecord, limit int, minMargin float64) []PricePoint {
	n := len(sold)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]PricePoint, n)
	for i, r := range sold[:n] {
		margin := r.Margin()
		out[i] = PricePoint{
			ItemID:         r.ItemID,
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			Category:       normalizeCategory(r.Category),
			Channel:        r.Channel,
			Price:          r.Price,
			Profit:         r.Profit(),
			Margin:         margin,
			BelowMinMargin: margin < minMargin,
		}
	}
	return out
}
