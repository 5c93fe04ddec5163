package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/resale/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// MinorUnitExponent is the number of decimal places between the stored major
// currency amount and the integer minor units the engine works in.
const MinorUnitExponent = 2

// InventoryRecordModel is the persistence model for one unit of stock.
// Money columns hold major currency units; fractions of a minor unit are
// rounded half away from zero on read.
type InventoryRecordModel struct {
	BaseModel
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	Channel     string          `gorm:"type:varchar(20);not null;index"`
	Status      string          `gorm:"type:varchar(20);not null"`
	AcquiredAt  time.Time       `gorm:"not null;index"`
	ListedAt    *time.Time      `gorm:""`
	SoldAt      *time.Time      `gorm:"index"`
	Price       decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	Cost        decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
	RefurbCost  decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryRecordModel) TableName() string {
	return "inventory_records"
}

// ToDomain converts the persistence model to a domain InventoryRecord
func (m *InventoryRecordModel) ToDomain() analytics.InventoryRecord {
	return analytics.InventoryRecord{
		ItemID:      m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Category:    m.Category,
		Channel:     analytics.Channel(m.Channel),
		Status:      analytics.Status(m.Status),
		AcquiredAt:  m.AcquiredAt,
		ListedAt:    m.ListedAt,
		SoldAt:      m.SoldAt,
		Price:       ToMinorUnits(m.Price),
		Cost:        ToMinorUnits(m.Cost),
		RefurbCost:  ToMinorUnits(m.RefurbCost),
	}
}

// FromDomain populates the model from a domain InventoryRecord. Timestamps
// are normalised to UTC so range predicates compare consistently.
func (m *InventoryRecordModel) FromDomain(r analytics.InventoryRecord) {
	m.ID = r.ItemID
	m.ProductID = r.ProductID
	m.ProductName = r.ProductName
	m.Category = r.Category
	m.Channel = string(r.Channel)
	m.Status = string(r.Status)
	m.AcquiredAt = r.AcquiredAt.UTC()
	m.ListedAt = utcPtr(r.ListedAt)
	m.SoldAt = utcPtr(r.SoldAt)
	m.Price = FromMinorUnits(r.Price)
	m.Cost = FromMinorUnits(r.Cost)
	m.RefurbCost = FromMinorUnits(r.RefurbCost)
}

// ToMinorUnits converts a major currency amount to integer minor units
func ToMinorUnits(d decimal.Decimal) int64 {
	return d.Shift(MinorUnitExponent).Round(0).IntPart()
}

// FromMinorUnits converts integer minor units to a major currency amount
func FromMinorUnits(v int64) decimal.Decimal {
	return decimal.New(v, -MinorUnitExponent)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
