package analytics

import (
	"time"

	"github.com/google/uuid"
)

// referenceNow is the injected clock used across engine tests
var referenceNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

type recordOpt func(*InventoryRecord)

func withProduct(id uuid.UUID, name string) recordOpt {
	return func(r *InventoryRecord) {
		r.ProductID = id
		r.ProductName = name
	}
}

func withChannel(c Channel) recordOpt {
	return func(r *InventoryRecord) { r.Channel = c }
}

func withCategory(c string) recordOpt {
	return func(r *InventoryRecord) { r.Category = c }
}

func withStatus(s Status) recordOpt {
	return func(r *InventoryRecord) { r.Status = s }
}

func withRefurb(v int64) recordOpt {
	return func(r *InventoryRecord) { r.RefurbCost = v }
}

func withListed(t time.Time) recordOpt {
	return func(r *InventoryRecord) { r.ListedAt = ptr(t) }
}

// stock builds an unsold IN_STOCK unit
func stock(acquired time.Time, cost int64, opts ...recordOpt) InventoryRecord {
	r := InventoryRecord{
		ItemID:      uuid.New(),
		ProductID:   uuid.New(),
		ProductName: "Unit",
		Category:    "phones",
		Channel:     ChannelOnline,
		Status:      StatusInStock,
		AcquiredAt:  acquired,
		Price:       cost * 2,
		Cost:        cost,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// sale builds a SOLD unit
func sale(acquired, sold time.Time, price, cost int64, opts ...recordOpt) InventoryRecord {
	r := stock(acquired, cost)
	r.Status = StatusSold
	r.ListedAt = ptr(acquired)
	r.SoldAt = ptr(sold)
	r.Price = price
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func filterFor(start, end time.Time) ReportFilter {
	return ReportFilter{
		StartDate: StartOfDay(start),
		EndDate:   EndOfDay(end),
		Channels:  AllChannels(),
	}
}
