package analytics

// Rolling window lengths in days
const (
	ShortRollingWindow = 30
	LongRollingWindow  = 60
)

// TrendPoint is one day of the rolling profit trend
type TrendPoint struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Profit    int64   `json:"profit"`
	Rolling30 float64 `json:"rolling_30"`
	Rolling60 float64 `json:"rolling_60"`
}

// RollingTrend emits one point per day of the filter span with that day's
// total profit and simple moving averages over the trailing 30 and 60 days.
// Windows shrink near the start of the span instead of reaching before it.
func RollingTrend(sold []InventoryRecord, filter ReportFilter) []TrendPoint {
	days := filter.Days()
	out := make([]TrendPoint, len(days))
	if len(days) == 0 {
		return out
	}

	index := make(map[string]int, len(days))
	for i, d := range days {
		key := DayKey(d)
		out[i].Date = key
		index[key] = i
	}

	loc := filter.StartDate.Location()
	for _, r := range sold {
		if r.SoldAt == nil {
			continue
		}
		if i, ok := index[DayKey(r.SoldAt.In(loc))]; ok {
			out[i].Profit += r.Profit()
		}
	}

	// prefix[i] holds the profit of days [0, i)
	prefix := make([]int64, len(days)+1)
	for i := range out {
		prefix[i+1] = prefix[i] + out[i].Profit
	}
	for i := range out {
		out[i].Rolling30 = trailingMean(prefix, i, ShortRollingWindow)
		out[i].Rolling60 = trailingMean(prefix, i, LongRollingWindow)
	}
	return out
}

// trailingMean averages the up-to-window values ending at index i
func trailingMean(prefix []int64, i, window int) float64 {
	from := i + 1 - window
	if from < 0 {
		from = 0
	}
	n := i + 1 - from
	return float64(prefix[i+1]-prefix[from]) / float64(n)
}
