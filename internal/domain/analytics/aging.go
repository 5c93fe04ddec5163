package analytics

import (
	"fmt"
	"time"
)

// Aging histogram shape
const (
	AgingBucketWidthDays = 10
	AgingBucketCount     = 12
)

// AgingBucket counts units whose holding age falls in [StartDay, EndDay].
// The last bucket is open-ended: EndDay is nil and the label is "{start}+".
type AgingBucket struct {
	Label      string `json:"label"`
	StartDay   int    `json:"start_day"`
	EndDay     *int   `json:"end_day,omitempty"`
	Count      int    `json:"count"`
	TotalValue int64  `json:"total_value"`
}

// AgingHistogram buckets acquired units by days held: until sale for sold
// units, until now otherwise. All buckets are emitted in ascending order.
func AgingHistogram(acquired []InventoryRecord, now time.Time) []AgingBucket {
	out := seedAgingBuckets()
	for _, r := range acquired {
		i := BucketIndex(HoldingDays(r, now), AgingBucketWidthDays, AgingBucketCount)
		out[i].Count++
		out[i].TotalValue += r.TotalCost()
	}
	return out
}

// HoldingDays is the non-negative number of days a unit was held, counted in
// calendar days of now's location.
func HoldingDays(r InventoryRecord, now time.Time) int {
	ref := now
	if r.IsSold() {
		ref = *r.SoldAt
	}
	days := DaysBetween(r.AcquiredAt.In(now.Location()), ref)
	if days < 0 {
		return 0
	}
	return days
}

// seedAgingBuckets zero-initialises every histogram bucket
func seedAgingBuckets() []AgingBucket {
	out := make([]AgingBucket, AgingBucketCount)
	for i := range out {
		start := i * AgingBucketWidthDays
		out[i].StartDay = start
		if i == AgingBucketCount-1 {
			out[i].Label = fmt.Sprintf("%d+", start)
			continue
		}
		end := start + AgingBucketWidthDays - 1
		out[i].EndDay = &end
		out[i].Label = fmt.Sprintf("%d-%d", start, end)
	}
	return out
}
