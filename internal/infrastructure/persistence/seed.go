package persistence

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/resale/backend/internal/domain/analytics"
)

var demoProducts = []struct {
	name     string
	category string
	cost     int64
}{
	{"iPhone 13", "phones", 28000},
	{"Galaxy S22", "phones", 24000},
	{"Pixel 7", "phones", 19000},
	{"MacBook Air M1", "laptops", 52000},
	{"ThinkPad X1 Carbon", "laptops", 61000},
	{"iPad Air", "tablets", 26000},
	{"Sony A7 III", "cameras", 98000},
	{"AirPods Pro", "audio", 9000},
	{"Nintendo Switch", "consoles", 17000},
	{"Apple Watch SE", "watches", 12000},
	{"MagSafe Charger", "accessories", 2500},
}

// DemoRecords generates n plausible records acquired over the year before
// now. The same seed always yields the same records.
func DemoRecords(n int, now time.Time, seed uint64) []analytics.InventoryRecord {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	channels := analytics.AllChannels()

	productIDs := make([]uuid.UUID, len(demoProducts))
	for i := range productIDs {
		productIDs[i] = uuid.NewSHA1(uuid.NameSpaceOID, []byte(demoProducts[i].name))
	}

	records := make([]analytics.InventoryRecord, 0, n)
	for i := 0; i < n; i++ {
		p := rng.IntN(len(demoProducts))
		product := demoProducts[p]

		acquired := now.Add(-time.Duration(rng.IntN(365*24)) * time.Hour)
		cost := product.cost * int64(80+rng.IntN(41)) / 100
		var refurb int64
		if rng.IntN(4) == 0 {
			refurb = cost * int64(5+rng.IntN(16)) / 100
		}
		rec := analytics.InventoryRecord{
			ItemID:      uuid.New(),
			ProductID:   productIDs[p],
			ProductName: product.name,
			Category:    product.category,
			Channel:     channels[rng.IntN(len(channels))],
			AcquiredAt:  acquired,
			Cost:        cost,
			RefurbCost:  refurb,
		}

		ageHours := int(now.Sub(acquired).Hours())
		switch roll := rng.IntN(10); {
		case roll < 6 && ageHours > 24:
			sold := acquired.Add(time.Duration(1+rng.IntN(ageHours)) * time.Hour)
			listed := acquired.Add(sold.Sub(acquired) / 3)
			rec.Status = analytics.StatusSold
			rec.ListedAt = &listed
			rec.SoldAt = &sold
			rec.Price = (cost + refurb) * int64(95+rng.IntN(50)) / 100
		case roll < 8:
			listed := acquired.Add(24 * time.Hour)
			rec.Status = analytics.StatusListed
			rec.ListedAt = &listed
			rec.Price = (cost + refurb) * 130 / 100
		default:
			rec.Status = []analytics.Status{
				analytics.StatusInStock, analytics.StatusReserved, analytics.StatusRepair,
			}[rng.IntN(3)]
		}
		records = append(records, rec)
	}
	return records
}
