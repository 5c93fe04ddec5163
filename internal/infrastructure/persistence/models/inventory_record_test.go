package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resale/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryRecordModel_TableName(t *testing.T) {
	assert.Equal(t, "inventory_records", InventoryRecordModel{}.TableName())
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{"whole amount", "1299", 129900},
		{"cents", "12.34", 1234},
		{"sub-cent rounds up", "0.005", 1},
		{"sub-cent rounds down", "0.0049", 0},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinorUnits(decimal.RequireFromString(tt.value)))
		})
	}
}

func TestInventoryRecordModel_RoundTrip(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	acquired := time.Date(2026, 3, 1, 9, 0, 0, 0, tokyo)
	sold := acquired.Add(72 * time.Hour)
	record := analytics.InventoryRecord{
		ItemID:      uuid.New(),
		ProductID:   uuid.New(),
		ProductName: "Pixel 8",
		Category:    "phones",
		Channel:     analytics.ChannelMarketplace,
		Status:      analytics.StatusSold,
		AcquiredAt:  acquired,
		SoldAt:      &sold,
		Price:       45000,
		Cost:        30000,
		RefurbCost:  2550,
	}

	var m InventoryRecordModel
	m.FromDomain(record)

	assert.Equal(t, time.UTC, m.AcquiredAt.Location())
	assert.Nil(t, m.ListedAt)
	assert.True(t, decimal.RequireFromString("25.5").Equal(m.RefurbCost))

	got := m.ToDomain()
	assert.Equal(t, record.ItemID, got.ItemID)
	assert.Equal(t, analytics.ChannelMarketplace, got.Channel)
	assert.Equal(t, analytics.StatusSold, got.Status)
	assert.True(t, got.AcquiredAt.Equal(acquired))
	require.NotNil(t, got.SoldAt)
	assert.True(t, got.SoldAt.Equal(sold))
	assert.Equal(t, int64(45000), got.Price)
	assert.Equal(t, int64(30000), got.Cost)
	assert.Equal(t, int64(2550), got.RefurbCost)
	assert.True(t, got.IsSold())
}
