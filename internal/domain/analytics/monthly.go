package analytics

// MonthlyFinancial is revenue, cost and profit of units sold in one calendar month
type MonthlyFinancial struct {
	Month     string  `json:"month"` // YYYY-MM
	UnitsSold int     `json:"units_sold"`
	Revenue   int64   `json:"revenue"`
	Cost      int64   `json:"cost"`
	Profit    int64   `json:"profit"`
	Margin    float64 `json:"margin"`
}

// MonthlyFinancials buckets sold records by sale month. Every month of the
// filter span is present, zero-valued when nothing sold, in ascending order.
func MonthlyFinancials(sold []InventoryRecord, filter ReportFilter) []MonthlyFinancial {
	out := seedMonths(filter)
	index := make(map[string]int, len(out))
	for i := range out {
		index[out[i].Month] = i
	}

	loc := filter.StartDate.Location()
	for _, r := range sold {
		if r.SoldAt == nil {
			continue
		}
		i, ok := index[MonthKey(r.SoldAt.In(loc))]
		if !ok {
			continue
		}
		out[i].UnitsSold++
		out[i].Revenue += r.Price
		out[i].Cost += r.TotalCost()
	}

	for i := range out {
		out[i].Profit = out[i].Revenue - out[i].Cost
		out[i].Margin = Ratio(out[i].Profit, out[i].Revenue)
	}
	return out
}

// seedMonths zero-initialises one entry per month of the filter span
func seedMonths(filter ReportFilter) []MonthlyFinancial {
	months := filter.Months()
	out := make([]MonthlyFinancial, len(months))
	for i, m := range months {
		out[i] = MonthlyFinancial{Month: MonthKey(m)}
	}
	return out
}
