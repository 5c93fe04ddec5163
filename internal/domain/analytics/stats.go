package analytics

import (
	"slices"
	"time"
)

// MonthKeyLayout is the layout of monthly bucket keys
const MonthKeyLayout = "2006-01"

// DateLayout is the layout of day keys and filter dates
const DateLayout = "2006-01-02"

// Median returns the median of values using integer truncation for the
// even-count mean. The input slice is not modified.
func Median(values []int64) int64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Average returns sum/count with integer truncation, 0 for an empty count
func Average(sum int64, count int) int64 {
	if count <= 0 {
		return 0
	}
	return sum / int64(count)
}

// MeanFloat returns the arithmetic mean of values, 0 for no values
func MeanFloat(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int64
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// Ratio returns part/whole, 0 when whole is not positive
func Ratio(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// Percentage returns part/total*100, 0 when total is not positive
func Percentage(part, total int64) float64 {
	return Ratio(part, total) * 100
}

// BucketIndex maps a non-negative value to a fixed-width bucket, with the
// last bucket absorbing everything beyond the covered range.
func BucketIndex(value, width, count int) int {
	if count <= 0 {
		return 0
	}
	if value < 0 || width <= 0 {
		return 0
	}
	idx := value / width
	if idx > count-1 {
		idx = count - 1
	}
	return idx
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonth truncates t to the first day of its month
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthKey formats t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// DayKey formats t as YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween counts calendar days from a to b in a's location.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	loc := a.Location()
	ay, am, ad := a.Date()
	by, bm, bd := b.In(loc).Date()
	// UTC midnights avoid DST-length days skewing the division
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// inRange reports whether t falls within [start, end] inclusive
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
