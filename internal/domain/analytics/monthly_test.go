package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyFinancials_SingleMonthTotals(t *testing.T) {
	filter := filterFor(at(2026, time.May, 1), at(2026, time.May, 31))
	acquired := at(2026, time.April, 2)

	sold := []InventoryRecord{
		sale(acquired, at(2026, time.May, 3), 12_000_000, 7_000_000, withRefurb(1_000_000)),
		sale(acquired, at(2026, time.May, 14), 32_000_000, 21_000_000),
		sale(acquired, at(2026, time.May, 29), 65_000_000, 45_000_000, withRefurb(3_000_000)),
	}

	got := MonthlyFinancials(sold, filter)

	require.Len(t, got, 1)
	assert.Equal(t, "2026-05", got[0].Month)
	assert.Equal(t, 3, got[0].UnitsSold)
	assert.Equal(t, int64(109_000_000), got[0].Revenue)
	assert.Equal(t, int64(77_000_000), got[0].Cost)
	assert.Equal(t, int64(32_000_000), got[0].Profit)
	assert.InDelta(t, 32.0/109.0, got[0].Margin, 1e-12)
}

func TestMonthlyFinancials_EveryMonthPresent(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []string
	}{
		{
			name:  "partial months at both ends",
			start: at(2026, time.January, 15),
			end:   at(2026, time.April, 3),
			want:  []string{"2026-01", "2026-02", "2026-03", "2026-04"},
		},
		{
			name:  "across a year boundary",
			start: at(2025, time.November, 30),
			end:   at(2026, time.February, 1),
			want:  []string{"2025-11", "2025-12", "2026-01", "2026-02"},
		},
		{
			name:  "single day",
			start: at(2026, time.July, 9),
			end:   at(2026, time.July, 9),
			want:  []string{"2026-07"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyFinancials(nil, filterFor(tt.start, tt.end))

			require.Len(t, got, len(tt.want))
			for i, m := range got {
				assert.Equal(t, tt.want[i], m.Month)
				assert.Zero(t, m.UnitsSold)
				assert.Zero(t, m.Revenue)
				assert.Zero(t, m.Margin)
			}
		})
	}
}

func TestMonthlyFinancials_ProfitConservation(t *testing.T) {
	filter := filterFor(at(2026, time.January, 1), at(2026, time.June, 30))
	acquired := at(2025, time.December, 1)

	var sold []InventoryRecord
	for i := 0; i < 40; i++ {
		month := time.Month(i%6 + 1)
		price := int64(1_000_003 * (i + 1))
		cost := int64(777_777 * (i%5 + 1))
		refurb := int64(i%3) * 12_345
		sold = append(sold, sale(acquired, at(2026, month, i%27+1), price, cost, withRefurb(refurb)))
	}

	got := MonthlyFinancials(sold, filter)

	require.Len(t, got, 6)
	var units int
	for _, m := range got {
		assert.Equal(t, m.Revenue-m.Cost, m.Profit, m.Month)
		units += m.UnitsSold
	}
	assert.Equal(t, 40, units)
}

func TestMonthlyFinancials_LossMakingMonth(t *testing.T) {
	filter := filterFor(at(2026, time.March, 1), at(2026, time.March, 31))
	sold := []InventoryRecord{
		sale(at(2026, time.February, 1), at(2026, time.March, 2), 100, 150),
	}

	got := MonthlyFinancials(sold, filter)

	require.Len(t, got, 1)
	assert.Equal(t, int64(-50), got[0].Profit)
	assert.InDelta(t, -0.5, got[0].Margin, 1e-12)
}
