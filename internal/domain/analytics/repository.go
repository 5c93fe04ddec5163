package analytics

import (
	"context"
	"time"
)

// RecordQuery narrows what a RecordRepository returns. It is a coarse
// prefilter only; Select re-applies the exact predicate afterwards.
type RecordQuery struct {
	Channels []Channel
	Category string // empty for all categories
	From     time.Time
	To       time.Time // records acquired or sold in [From, To]
}

// QueryFor builds the storage prefilter covering both working sets of f
func QueryFor(f ReportFilter) RecordQuery {
	return RecordQuery{
		Channels: append([]Channel(nil), f.Channels...),
		Category: f.Category,
		From:     f.StartDate,
		To:       f.EndDate,
	}
}

// RecordRepository is the read side of the inventory store
type RecordRepository interface {
	// FindRecords returns a materialised snapshot of matching records
	FindRecords(ctx context.Context, q RecordQuery) ([]InventoryRecord, error)
}
