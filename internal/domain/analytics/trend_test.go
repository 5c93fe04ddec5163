package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingTrend_ShortRange(t *testing.T) {
	filter := filterFor(at(2026, time.January, 1), at(2026, time.January, 3))
	acquired := at(2025, time.December, 1)

	sold := []InventoryRecord{
		sale(acquired, at(2026, time.January, 1), 160, 60),
		sale(acquired, at(2026, time.January, 3), 80, 30),
	}

	got := RollingTrend(sold, filter)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"2026-01-01", "2026-01-02", "2026-01-03"},
		[]string{got[0].Date, got[1].Date, got[2].Date})

	assert.Equal(t, int64(100), got[0].Profit)
	assert.Equal(t, int64(0), got[1].Profit)
	assert.Equal(t, int64(50), got[2].Profit)

	assert.InDelta(t, 100.0, got[0].Rolling30, 1e-9)
	assert.InDelta(t, 50.0, got[1].Rolling30, 1e-9)
	assert.InDelta(t, 50.0, got[2].Rolling30, 1e-9)
	assert.Equal(t, got[2].Rolling30, got[2].Rolling60)
}

func TestRollingTrend_WindowsSlide(t *testing.T) {
	// 61 days: Jan 1 .. Mar 2
	filter := filterFor(at(2026, time.January, 1), at(2026, time.March, 2))
	sold := []InventoryRecord{
		sale(at(2025, time.December, 1), at(2026, time.January, 1), 400, 100),
	}

	got := RollingTrend(sold, filter)

	require.Len(t, got, 61)
	assert.InDelta(t, 10.0, got[29].Rolling30, 1e-9)
	assert.InDelta(t, 0.0, got[30].Rolling30, 1e-9)
	assert.InDelta(t, 5.0, got[59].Rolling60, 1e-9)
	assert.InDelta(t, 0.0, got[60].Rolling60, 1e-9)
}

func TestRollingTrend_EmptyRange(t *testing.T) {
	filter := filterFor(at(2026, time.January, 5), at(2026, time.January, 1))

	got := RollingTrend(nil, filter)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
