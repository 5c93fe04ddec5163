package analytics

import (
	"time"

	"golang.org/x/sync/errgroup"
)

// EngineConfig holds the externally supplied thresholds of the engine
type EngineConfig struct {
	Catalog            Catalog
	TopProductsLimit   int
	TopCategoriesLimit int
	PriceMarginLimit   int     // 0 keeps every point
	MinMarginThreshold float64 // flags scatter points only
	Parallel           bool
}

// DefaultEngineConfig returns the default engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Catalog:            DefaultCatalog(),
		TopProductsLimit:   DefaultTopProductsLimit,
		TopCategoriesLimit: DefaultTopCategoriesLimit,
		MinMarginThreshold: 0.15,
	}
}

// Summary is a headline view derived from the same working sets
type Summary struct {
	UnitsSold         int     `json:"units_sold"`
	Revenue           int64   `json:"revenue"`
	Cost              int64   `json:"cost"`
	Profit            int64   `json:"profit"`
	Margin            float64 `json:"margin"`
	UnitsAcquired     int     `json:"units_acquired"`
	InventoryValue    int64   `json:"inventory_value"`
	AverageDaysToSell float64 `json:"average_days_to_sell"`
}

// Dashboard bundles every metric table for one filter
type Dashboard struct {
	Filter             ReportFilter         `json:"filter"`
	GeneratedAt        time.Time            `json:"generated_at"`
	MinMarginThreshold float64              `json:"min_margin_threshold"`
	Summary            Summary              `json:"summary"`
	Monthly            []MonthlyFinancial   `json:"monthly"`
	Trend              []TrendPoint         `json:"trend"`
	ChannelMix         []ChannelShare       `json:"channel_mix"`
	Inventory          InventoryValue       `json:"inventory"`
	TopProducts        []ProductPerformance `json:"top_products"`
	SellThrough        []SellThrough        `json:"sell_through"`
	Funnel             []FunnelStage        `json:"funnel"`
	Aging              []AgingBucket        `json:"aging"`
	RepairROI          RepairROI            `json:"repair_roi"`
	PriceMargin        []PricePoint         `json:"price_margin"`
}

// Engine computes dashboards. It holds configuration only and is safe for
// concurrent use.
type Engine struct {
	cfg EngineConfig
}

// NewEngine creates an Engine, filling zero-valued limits with defaults
func NewEngine(cfg EngineConfig) *Engine {
	if len(cfg.Catalog.Channels) == 0 && len(cfg.Catalog.Categories) == 0 {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.TopProductsLimit <= 0 {
		cfg.TopProductsLimit = DefaultTopProductsLimit
	}
	if cfg.TopCategoriesLimit <= 0 {
		cfg.TopCategoriesLimit = DefaultTopCategoriesLimit
	}
	return &Engine{cfg: cfg}
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// Resolve resolves a raw filter against the engine's catalog
func (e *Engine) Resolve(raw RawFilter, now time.Time) ReportFilter {
	return ResolveFilter(raw, e.cfg.Catalog, now)
}

// Build resolves raw and computes the dashboard in one step
func (e *Engine) Build(records []InventoryRecord, raw RawFilter, now time.Time) *Dashboard {
	return e.Compute(records, e.Resolve(raw, now), now)
}

// Compute runs every aggregation over records for an already resolved
// filter. Each reducer writes only its own field, so the parallel and
// sequential paths produce identical dashboards.
func (e *Engine) Compute(records []InventoryRecord, filter ReportFilter, now time.Time) *Dashboard {
	sets := Select(records, filter)
	d := &Dashboard{
		Filter:             filter,
		GeneratedAt:        now,
		MinMarginThreshold: e.cfg.MinMarginThreshold,
	}

	tasks := []func(){
		func() { d.Summary = Summarize(sets, now) },
		func() { d.Monthly = MonthlyFinancials(sets.Sold, filter) },
		func() { d.Trend = RollingTrend(sets.Sold, filter) },
		func() { d.ChannelMix = ChannelMix(sets.Sold) },
		func() { d.Inventory = InventoryByStatus(sets.Acquired, e.cfg.TopCategoriesLimit) },
		func() { d.TopProducts = TopProducts(sets.Sold, e.cfg.TopProductsLimit) },
		func() { d.SellThrough = SellThroughRates(sets.Acquired, sets.Sold) },
		func() { d.Funnel = ListingFunnel(sets.Acquired) },
		func() { d.Aging = AgingHistogram(sets.Acquired, now) },
		func() { d.RepairROI = RepairReturn(sets.Sold) },
		func() {
			d.PriceMargin = PriceMarginSample(sets.Sold, e.cfg.PriceMarginLimit, e.cfg.MinMarginThreshold)
		},
	}

	if !e.cfg.Parallel {
		for _, task := range tasks {
			task()
		}
		return d
	}

	var g errgroup.Group
	for _, task := range tasks {
		g.Go(func() error {
			task()
			return nil
		})
	}
	_ = g.Wait() // reducers never fail
	return d
}

// Summarize totals the sold set and values the unsold part of the acquired set
func Summarize(sets WorkingSets, now time.Time) Summary {
	var s Summary
	held := make([]int64, 0, len(sets.Sold))
	for _, r := range sets.Sold {
		s.UnitsSold++
		s.Revenue += r.Price
		s.Cost += r.TotalCost()
		held = append(held, int64(HoldingDays(r, now)))
	}
	s.Profit = s.Revenue - s.Cost
	s.Margin = Ratio(s.Profit, s.Revenue)
	s.AverageDaysToSell = MeanFloat(held)

	for _, r := range sets.Acquired {
		s.UnitsAcquired++
		if r.Status != StatusSold {
			s.InventoryValue += r.TotalCost()
		}
	}
	return s
}
