// Package analytics holds the inventory and sales aggregation engine.
// Everything in this package is a pure function of its inputs: records are
// read, never written, and "now" is always passed in by the caller.
package analytics

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Channel is the venue a unit is listed or sold through
type Channel string

// Channel constants
const (
	ChannelOnline      Channel = "ONLINE"
	ChannelRetail      Channel = "RETAIL"
	ChannelMarketplace Channel = "MARKETPLACE"
	ChannelWholesale   Channel = "WHOLESALE"
	ChannelSocial      Channel = "SOCIAL"
)

// AllChannels returns every known channel in display order
func AllChannels() []Channel {
	return []Channel{
		ChannelOnline,
		ChannelRetail,
		ChannelMarketplace,
		ChannelWholesale,
		ChannelSocial,
	}
}

// ParseChannel matches a channel token case-insensitively
func ParseChannel(s string) (Channel, bool) {
	c := Channel(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllChannels() {
		if c == known {
			return known, true
		}
	}
	return "", false
}

// Status is the lifecycle state of a unit
type Status string

// Status constants
const (
	StatusInStock  Status = "IN_STOCK"
	StatusListed   Status = "LISTED"
	StatusReserved Status = "RESERVED"
	StatusRepair   Status = "REPAIR"
	StatusSold     Status = "SOLD"
)

// AllStatuses returns every lifecycle state in lifecycle order
func AllStatuses() []Status {
	return []Status{StatusInStock, StatusListed, StatusReserved, StatusRepair, StatusSold}
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusInStock, StatusListed, StatusReserved, StatusRepair, StatusSold:
		return true
	}
	return false
}

// InventoryRecord is one physical unit of saleable stock.
// Money fields are integers in the smallest currency unit.
type InventoryRecord struct {
	ItemID      uuid.UUID  `json:"item_id"`
	ProductID   uuid.UUID  `json:"product_id"`
	ProductName string     `json:"product_name"`
	Category    string     `json:"category"`
	Channel     Channel    `json:"channel"`
	Status      Status     `json:"status"`
	AcquiredAt  time.Time  `json:"acquired_at"`
	ListedAt    *time.Time `json:"listed_at,omitempty"` // may be nil for any status
	SoldAt      *time.Time `json:"sold_at,omitempty"`
	Price       int64      `json:"price"`
	Cost        int64      `json:"cost"`
	RefurbCost  int64      `json:"refurb_cost"`
}

// IsSold reports whether the unit has been sold
func (r InventoryRecord) IsSold() bool {
	return r.Status == StatusSold && r.SoldAt != nil
}

// TotalCost is acquisition cost plus refurbishment
func (r InventoryRecord) TotalCost() int64 {
	return r.Cost + r.RefurbCost
}

// Profit is sale price minus total cost
func (r InventoryRecord) Profit() int64 {
	return r.Price - r.TotalCost()
}

// Margin is profit over price, 0 when price is not positive
func (r InventoryRecord) Margin() float64 {
	return Ratio(r.Profit(), r.Price)
}

// IsRefurbished reports whether repair work was booked against the unit
func (r InventoryRecord) IsRefurbished() bool {
	return r.RefurbCost > 0
}

// DefaultCategories is the category set used when none is configured
var DefaultCategories = []string{
	"phones",
	"laptops",
	"tablets",
	"cameras",
	"audio",
	"consoles",
	"watches",
	"accessories",
}

// Catalog is the set of channels and categories a filter may name
type Catalog struct {
	Channels   []Channel
	Categories []string
}

// DefaultCatalog returns all channels and the default categories
func DefaultCatalog() Catalog {
	return NewCatalog(nil)
}

// NewCatalog builds a catalog over all channels and the given categories.
// An empty category list falls back to DefaultCategories.
func NewCatalog(categories []string) Catalog {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	cats := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		c = normalizeCategory(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	return Catalog{Channels: AllChannels(), Categories: cats}
}

// LookupCategory returns the canonical category for s
func (c Catalog) LookupCategory(s string) (string, bool) {
	s = normalizeCategory(s)
	if s == "" {
		return "", false
	}
	for _, known := range c.Categories {
		if known == s {
			return known, true
		}
	}
	return "", false
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
