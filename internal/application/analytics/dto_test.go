package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resale/backend/internal/domain/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRounding(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(float64) float64
		input float64
		want  float64
	}{
		{"ratio third", roundRatio, 1.0 / 3.0, 0.3333},
		{"ratio half up", roundRatio, 0.12345, 0.1235},
		{"ratio negative", roundRatio, -0.66666, -0.6667},
		{"ratio zero", roundRatio, 0, 0},
		{"percent", roundPercent, 68.754, 68.75},
		{"percent half up", roundPercent, 33.335, 33.34},
		{"percent whole", roundPercent, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.input))
		})
	}
}

func TestToFilterResponse(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	resp := toFilterResponse(analytics.ReportFilter{
		StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, tokyo),
		EndDate:   time.Date(2026, time.January, 31, 23, 59, 59, 0, tokyo),
		Channels:  []analytics.Channel{analytics.ChannelOnline, analytics.ChannelSocial},
	})

	assert.Equal(t, "2026-01-01", resp.StartDate)
	assert.Equal(t, "2026-01-31", resp.EndDate)
	assert.Equal(t, "Asia/Tokyo", resp.Timezone)
	assert.Equal(t, []string{"ONLINE", "SOCIAL"}, resp.Channels)
	assert.Empty(t, resp.Category)
}

func TestToProductResponses(t *testing.T) {
	id := uuid.New()
	out := toProductResponses([]analytics.ProductPerformance{{
		Rank:            1,
		ProductID:       id,
		ProductName:     "Phone X",
		Category:        "phones",
		Channels:        []analytics.Channel{analytics.ChannelRetail},
		UnitsSold:       2,
		Revenue:         5_000,
		Cost:            3_000,
		Profit:          2_000,
		AverageProfit:   1_000,
		MedianSoldPrice: 2_500,
	}})

	require.Len(t, out, 1)
	assert.Equal(t, id.String(), out[0].ProductID)
	assert.Equal(t, []string{"RETAIL"}, out[0].Channels)
	assert.Equal(t, int64(2_500), out[0].MedianSoldPrice)
}

func TestToDashboardResponse_EmptySlices(t *testing.T) {
	engine := analytics.NewEngine(analytics.DefaultEngineConfig())
	d := engine.Build(nil, analytics.RawFilter{}, testNow)

	resp := toDashboardResponse(d)

	assert.NotNil(t, resp.TopProducts)
	assert.NotNil(t, resp.ChannelMix)
	assert.NotNil(t, resp.SellThrough)
	assert.NotNil(t, resp.PriceMargin)
	assert.Len(t, resp.Monthly, analytics.DefaultRangeMonths)
	assert.Equal(t, 0.15, resp.MinMarginThreshold)
	assert.Equal(t, ROIGroupResponse{}, resp.RepairROI.Standard)
}
