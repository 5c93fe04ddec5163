package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resale/backend/internal/domain/analytics"
	"github.com/resale/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRecordRepository implements analytics.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindRecords returns every record matching the coarse prefilter in q,
// ordered by acquisition time so downstream tie-breaks are stable.
func (r *GormRecordRepository) FindRecords(ctx context.Context, q analytics.RecordQuery) ([]analytics.InventoryRecord, error) {
	var rows []models.InventoryRecordModel
	if err := r.scoped(ctx, q).Order("acquired_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query inventory records: %w", err)
	}

	records := make([]analytics.InventoryRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}

// Count returns the number of records matching q
func (r *GormRecordRepository) Count(ctx context.Context, q analytics.RecordQuery) (int64, error) {
	var count int64
	if err := r.scoped(ctx, q).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count inventory records: %w", err)
	}
	return count, nil
}

// Save inserts or updates records in batches
func (r *GormRecordRepository) Save(ctx context.Context, records ...analytics.InventoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]models.InventoryRecordModel, len(records))
	for i, rec := range records {
		rows[i].FromDomain(rec)
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	if err := r.db.WithContext(ctx).Save(&rows).Error; err != nil {
		return fmt.Errorf("save inventory records: %w", err)
	}
	return nil
}

func (r *GormRecordRepository) scoped(ctx context.Context, q analytics.RecordQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.InventoryRecordModel{})

	if len(q.Channels) > 0 && len(q.Channels) < len(analytics.AllChannels()) {
		channels := make([]string, len(q.Channels))
		for i, c := range q.Channels {
			channels[i] = string(c)
		}
		query = query.Where("channel IN ?", channels)
	}
	if q.Category != "" {
		query = query.Where("LOWER(TRIM(category)) = ?", q.Category)
	}
	if !q.From.IsZero() && !q.To.IsZero() {
		from, to := q.From.UTC(), q.To.UTC()
		query = query.Where("acquired_at BETWEEN ? AND ? OR sold_at BETWEEN ? AND ?", from, to, from, to)
	}
	return query
}

var _ analytics.RecordRepository = (*GormRecordRepository)(nil)
