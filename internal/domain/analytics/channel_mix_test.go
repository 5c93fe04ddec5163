package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelMix(t *testing.T) {
	acquired := at(2026, time.January, 1)
	soldAt := at(2026, time.February, 1)

	t.Run("percentages sum to one hundred", func(t *testing.T) {
		sold := []InventoryRecord{
			sale(acquired, soldAt, 333, 100, withChannel(ChannelSocial)),
			sale(acquired, soldAt, 333, 100, withChannel(ChannelOnline)),
			sale(acquired, soldAt, 334, 100, withChannel(ChannelWholesale)),
			sale(acquired, soldAt, 1000, 100, withChannel(ChannelOnline)),
		}

		got := ChannelMix(sold)

		require.Len(t, got, 3)
		assert.Equal(t, ChannelOnline, got[0].Channel)
		assert.Equal(t, ChannelWholesale, got[1].Channel)
		assert.Equal(t, ChannelSocial, got[2].Channel)

		assert.Equal(t, 2, got[0].UnitsSold)
		assert.Equal(t, int64(1333), got[0].Revenue)

		var total float64
		for _, s := range got {
			total += s.Percentage
		}
		assert.InDelta(t, 100.0, total, 1e-9)
	})

	t.Run("zero revenue gives zero percentages", func(t *testing.T) {
		sold := []InventoryRecord{
			sale(acquired, soldAt, 0, 100, withChannel(ChannelRetail)),
			sale(acquired, soldAt, 0, 100, withChannel(ChannelMarketplace)),
		}

		got := ChannelMix(sold)

		require.Len(t, got, 2)
		for _, s := range got {
			assert.Zero(t, s.Percentage)
		}
	})

	t.Run("no sales", func(t *testing.T) {
		got := ChannelMix(nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
