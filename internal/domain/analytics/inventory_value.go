package analytics

import (
	"cmp"
	"slices"
)

// DefaultTopCategoriesLimit caps the category value ranking
const DefaultTopCategoriesLimit = 8

// StatusValue is the held value of unsold units for one channel and status
type StatusValue struct {
	Channel    Channel `json:"channel"`
	Status     Status  `json:"status"`
	Units      int     `json:"units"`
	TotalValue int64   `json:"total_value"`
}

// CategoryValue is the held value of unsold units in one category
type CategoryValue struct {
	Category   string  `json:"category"`
	Units      int     `json:"units"`
	TotalValue int64   `json:"total_value"`
	Percentage float64 `json:"percentage"` // of all unsold value
}

// InventoryValue describes current, non-liquidated stock
type InventoryValue struct {
	TotalUnits    int             `json:"total_units"`
	TotalValue    int64           `json:"total_value"`
	ByStatus      []StatusValue   `json:"by_status"`
	TopCategories []CategoryValue `json:"top_categories"`
}

// InventoryByStatus values every acquired, not-yet-sold unit at cost plus
// refurbishment and groups it by (channel, status) and by category. The
// status breakdown is ordered by channel then lifecycle order; categories are
// ranked by value descending (name ascending on ties) and cut to limit.
func InventoryByStatus(acquired []InventoryRecord, limit int) InventoryValue {
	if limit <= 0 {
		limit = DefaultTopCategoriesLimit
	}

	type statusKey struct {
		channel Channel
		status  Status
	}
	byStatus := make(map[statusKey]*StatusValue)
	byCategory := make(map[string]*CategoryValue)

	var out InventoryValue
	for _, r := range acquired {
		if r.Status == StatusSold {
			continue
		}
		value := r.TotalCost()
		out.TotalUnits++
		out.TotalValue += value

		k := statusKey{r.Channel, r.Status}
		sv, ok := byStatus[k]
		if !ok {
			sv = &StatusValue{Channel: r.Channel, Status: r.Status}
			byStatus[k] = sv
		}
		sv.Units++
		sv.TotalValue += value

		name := normalizeCategory(r.Category)
		cv, ok := byCategory[name]
		if !ok {
			cv = &CategoryValue{Category: name}
			byCategory[name] = cv
		}
		cv.Units++
		cv.TotalValue += value
	}

	out.ByStatus = make([]StatusValue, 0, len(byStatus))
	for _, sv := range byStatus {
		out.ByStatus = append(out.ByStatus, *sv)
	}
	slices.SortFunc(out.ByStatus, func(a, b StatusValue) int {
		if c := cmp.Compare(channelRank(a.Channel), channelRank(b.Channel)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Channel, b.Channel); c != 0 {
			return c
		}
		return cmp.Compare(statusRank(a.Status), statusRank(b.Status))
	})

	out.TopCategories = make([]CategoryValue, 0, len(byCategory))
	for _, cv := range byCategory {
		cv.Percentage = Percentage(cv.TotalValue, out.TotalValue)
		out.TopCategories = append(out.TopCategories, *cv)
	}
	slices.SortFunc(out.TopCategories, func(a, b CategoryValue) int {
		if c := cmp.Compare(b.TotalValue, a.TotalValue); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	if len(out.TopCategories) > limit {
		out.TopCategories = out.TopCategories[:limit]
	}
	return out
}

func channelRank(c Channel) int {
	if i := slices.Index(AllChannels(), c); i >= 0 {
		return i
	}
	return len(AllChannels())
}

func statusRank(s Status) int {
	if i := slices.Index(AllStatuses(), s); i >= 0 {
		return i
	}
	return len(AllStatuses())
}
