package analytics

// ROIGroup is the combined outcome of one partition of sold units
type ROIGroup struct {
	Count   int     `json:"count"`
	Revenue int64   `json:"revenue"`
	Cost    int64   `json:"cost"`
	Profit  int64   `json:"profit"`
	Margin  float64 `json:"margin"`
}

// RepairROI compares refurbished sales against standard resale
type RepairROI struct {
	Refurbished ROIGroup `json:"refurbished"`
	Standard    ROIGroup `json:"standard"`
}

// RepairReturn partitions sold units on refurbCost > 0 and totals each side.
// Per-item averages are left to the caller (Profit / Count).
func RepairReturn(sold []InventoryRecord) RepairROI {
	var out RepairROI
	for _, r := range sold {
		g := &out.Standard
		if r.IsRefurbished() {
			g = &out.Refurbished
		}
		g.Count++
		g.Revenue += r.Price
		g.Cost += r.TotalCost()
	}
	for _, g := range []*ROIGroup{&out.Refurbished, &out.Standard} {
		g.Profit = g.Revenue - g.Cost
		g.Margin = Ratio(g.Profit, g.Revenue)
	}
	return out
}
