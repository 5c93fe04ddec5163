package persistence

import (
	"testing"
	"time"

	"github.com/resale/backend/internal/domain/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoRecords(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	records := DemoRecords(500, now, 42)
	require.Len(t, records, 500)

	again := DemoRecords(500, now, 42)
	for i := range records {
		assert.Equal(t, records[i].ProductName, again[i].ProductName)
		assert.Equal(t, records[i].Cost, again[i].Cost)
		assert.Equal(t, records[i].Status, again[i].Status)
	}

	catalog := analytics.DefaultCatalog()
	sold := 0
	for _, r := range records {
		assert.False(t, r.AcquiredAt.After(now))
		assert.True(t, r.Status.IsValid())
		_, known := catalog.LookupCategory(r.Category)
		assert.True(t, known, r.Category)
		assert.GreaterOrEqual(t, r.Cost, int64(0))

		if r.IsSold() {
			sold++
			assert.False(t, r.SoldAt.Before(r.AcquiredAt))
			assert.False(t, r.SoldAt.After(now))
			assert.Positive(t, r.Price)
		} else {
			assert.Nil(t, r.SoldAt)
		}
	}
	assert.Positive(t, sold)
}

func TestDemoRecords_Persist(t *testing.T) {
	db := newSQLiteDatabase(t)
	repo := NewGormRecordRepository(db.DB)
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(t.Context(), DemoRecords(50, now, 7)...))

	count, err := repo.Count(t.Context(), analytics.RecordQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(50), count)
}
