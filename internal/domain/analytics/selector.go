package analytics

// WorkingSets are the two independent record sets every aggregation reads.
// Acquired feeds valuation, funnel and aging metrics; Sold feeds financial
// and profit metrics. A unit may appear in either, both or neither.
type WorkingSets struct {
	Acquired []InventoryRecord
	Sold     []InventoryRecord
}

// Select applies a resolved filter to the full record set. Input order is
// preserved in both outputs and the input slice is not modified.
func Select(records []InventoryRecord, filter ReportFilter) WorkingSets {
	sets := WorkingSets{
		Acquired: make([]InventoryRecord, 0),
		Sold:     make([]InventoryRecord, 0),
	}
	for _, r := range records {
		if !filter.Matches(r) {
			continue
		}
		if inRange(r.AcquiredAt, filter.StartDate, filter.EndDate) {
			sets.Acquired = append(sets.Acquired, r)
		}
		if r.IsSold() && inRange(*r.SoldAt, filter.StartDate, filter.EndDate) {
			sets.Sold = append(sets.Sold, r)
		}
	}
	return sets
}
