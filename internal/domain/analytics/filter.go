package analytics

import (
	"strings"
	"time"
)

// DefaultRangeMonths is the number of calendar months covered when the
// caller supplies no usable start date
const DefaultRangeMonths = 12

// MaxRangeMonths bounds the resolved span. Earlier start dates are moved
// forward to the first day of the month MaxRangeMonths-1 months before the
// end month.
const MaxRangeMonths = 60

// RawFilter is a report filter as it arrives from a query string.
// Any field may be empty or malformed.
type RawFilter struct {
	StartDate string
	EndDate   string
	Channels  []string
	Category  string
}

// ReportFilter is a fully resolved filter.
// Channels is never empty; Category is empty when no category filter applies.
type ReportFilter struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Channels  []Channel `json:"channels"`
	Category  string    `json:"category,omitempty"`
}

// HasCategory reports whether the filter restricts by category
func (f ReportFilter) HasCategory() bool {
	return f.Category != ""
}

// AllowsChannel reports whether c is among the filter's channels
func (f ReportFilter) AllowsChannel(c Channel) bool {
	for _, allowed := range f.Channels {
		if allowed == c {
			return true
		}
	}
	return false
}

// Matches applies the channel and category predicate shared by both working sets
func (f ReportFilter) Matches(r InventoryRecord) bool {
	if !f.AllowsChannel(r.Channel) {
		return false
	}
	if f.HasCategory() && normalizeCategory(r.Category) != f.Category {
		return false
	}
	return true
}

// Days returns every calendar day in [StartDate, EndDate], empty when the
// range is inverted
func (f ReportFilter) Days() []time.Time {
	if f.EndDate.Before(f.StartDate) {
		return nil
	}
	n := DaysBetween(f.StartDate, f.EndDate) + 1
	days := make([]time.Time, 0, n)
	for d := StartOfDay(f.StartDate); !d.After(f.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Months returns the first day of every calendar month from StartDate's
// month to EndDate's month inclusive, empty when the range is inverted
func (f ReportFilter) Months() []time.Time {
	if f.EndDate.Before(f.StartDate) {
		return nil
	}
	last := StartOfMonth(f.EndDate)
	var months []time.Time
	for m := StartOfMonth(f.StartDate); !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// ResolveFilter turns a raw filter into a ReportFilter. It never fails:
// unparseable dates fall back to a trailing DefaultRangeMonths window ending
// today, unknown channels are dropped (all channels when none survive) and an
// unknown category means no category filter. Spans longer than MaxRangeMonths
// keep their end and lose the excess start. Dates are interpreted in now's
// location.
func ResolveFilter(raw RawFilter, catalog Catalog, now time.Time) ReportFilter {
	loc := now.Location()

	end, ok := parseDate(raw.EndDate, loc)
	if !ok {
		end = now
	}
	end = EndOfDay(end)

	start, ok := parseDate(raw.StartDate, loc)
	if !ok {
		start = StartOfMonth(end).AddDate(0, -(DefaultRangeMonths - 1), 0)
	}
	start = StartOfDay(start)
	if earliest := StartOfMonth(end).AddDate(0, -(MaxRangeMonths - 1), 0); start.Before(earliest) {
		start = earliest
	}

	channels := resolveChannels(raw.Channels, catalog)

	category, _ := catalog.LookupCategory(raw.Category)

	return ReportFilter{
		StartDate: start,
		EndDate:   end,
		Channels:  channels,
		Category:  category,
	}
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func resolveChannels(requested []string, catalog Catalog) []Channel {
	known := catalog.Channels
	if len(known) == 0 {
		known = AllChannels()
	}

	wanted := make(map[Channel]struct{}, len(requested))
	for _, token := range requested {
		// repeated values may also arrive comma-joined
		for _, part := range strings.Split(token, ",") {
			if c, ok := ParseChannel(part); ok {
				wanted[c] = struct{}{}
			}
		}
	}

	// keep catalog order so the resolved filter is deterministic
	channels := make([]Channel, 0, len(known))
	for _, c := range known {
		if _, ok := wanted[c]; ok {
			channels = append(channels, c)
		}
	}
	if len(channels) == 0 {
		return append([]Channel(nil), known...)
	}
	return channels
}
