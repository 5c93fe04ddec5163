package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgingHistogram_Shape(t *testing.T) {
	got := AgingHistogram(nil, referenceNow)

	require.Len(t, got, AgingBucketCount)
	assert.Equal(t, "0-9", got[0].Label)
	assert.Equal(t, "100-109", got[10].Label)
	require.NotNil(t, got[10].EndDay)
	assert.Equal(t, 109, *got[10].EndDay)

	last := got[AgingBucketCount-1]
	assert.Equal(t, "110+", last.Label)
	assert.Equal(t, 110, last.StartDay)
	assert.Nil(t, last.EndDay)
}

func TestAgingHistogram_Placement(t *testing.T) {
	tests := []struct {
		name   string
		record InventoryRecord
		bucket int
	}{
		{
			name:   "acquired today",
			record: stock(referenceNow, 10),
			bucket: 0,
		},
		{
			name:   "acquired in the future clamps to zero",
			record: stock(referenceNow.AddDate(0, 0, 5), 10),
			bucket: 0,
		},
		{
			name:   "boundary day ten",
			record: stock(referenceNow.AddDate(0, 0, -10), 10),
			bucket: 1,
		},
		{
			name:   "245 days unsold",
			record: stock(referenceNow.AddDate(0, 0, -245), 10),
			bucket: 11,
		},
		{
			name:   "500 days overflows",
			record: stock(referenceNow.AddDate(0, 0, -500), 10),
			bucket: 11,
		},
		{
			name:   "sold units age until sale",
			record: sale(referenceNow.AddDate(0, 0, -300), referenceNow.AddDate(0, 0, -275), 100, 10),
			bucket: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AgingHistogram([]InventoryRecord{tt.record}, referenceNow)

			for i, b := range got {
				if i == tt.bucket {
					assert.Equal(t, 1, b.Count, "bucket %s", b.Label)
					assert.Equal(t, tt.record.TotalCost(), b.TotalValue)
					continue
				}
				assert.Zero(t, b.Count, "bucket %s", b.Label)
			}
		})
	}
}

func TestHoldingDays(t *testing.T) {
	r := stock(at(2026, time.October, 1), 10)
	assert.Equal(t, 18, HoldingDays(r, referenceNow))

	r = sale(at(2026, time.October, 1), at(2026, time.October, 4), 20, 10)
	assert.Equal(t, 3, HoldingDays(r, referenceNow))
}

func TestHoldingDays_CountsInReportingLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-03-05 01:00 JST as the repository stores it
	acquired := time.Date(2026, time.March, 4, 16, 0, 0, 0, time.UTC)
	now := time.Date(2026, time.March, 14, 23, 0, 0, 0, tokyo)

	r := stock(acquired, 10)
	assert.Equal(t, 9, HoldingDays(r, now))

	hist := AgingHistogram([]InventoryRecord{r}, now)
	assert.Equal(t, 1, hist[0].Count)
	assert.Equal(t, 0, hist[1].Count)

	// sold 2026-03-15 00:30 JST, stored in UTC
	r = sale(acquired, time.Date(2026, time.March, 14, 15, 30, 0, 0, time.UTC), 20, 10)
	assert.Equal(t, 10, HoldingDays(r, now.AddDate(0, 0, 5)))
}
