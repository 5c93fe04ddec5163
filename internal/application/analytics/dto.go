package analytics

import (
	"time"

	"github.com/resale/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// DashboardQuery is an analytics request as received from the caller.
// Dates and channels are unvalidated; resolution never fails.
type DashboardQuery struct {
	StartDate string
	EndDate   string
	Channels  []string
	Category  string
	Limit     int // top products override, 0 keeps the configured limit
}

func (q DashboardQuery) rawFilter() analytics.RawFilter {
	return analytics.RawFilter{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Channels:  q.Channels,
		Category:  q.Category,
	}
}

// FilterResponse echoes the resolved filter
type FilterResponse struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Timezone  string   `json:"timezone"`
	Channels  []string `json:"channels"`
	Category  string   `json:"category,omitempty"`
}

// SummaryResponse is the headline block of the dashboard
type SummaryResponse struct {
	UnitsSold         int     `json:"units_sold"`
	Revenue           int64   `json:"revenue"`
	Cost              int64   `json:"cost"`
	Profit            int64   `json:"profit"`
	Margin            float64 `json:"margin"`
	UnitsAcquired     int     `json:"units_acquired"`
	InventoryValue    int64   `json:"inventory_value"`
	AverageDaysToSell float64 `json:"average_days_to_sell"`
}

// MonthlyFinancialResponse is one month of sold revenue, cost and profit
type MonthlyFinancialResponse struct {
	Month     string  `json:"month"`
	UnitsSold int     `json:"units_sold"`
	Revenue   int64   `json:"revenue"`
	Cost      int64   `json:"cost"`
	Profit    int64   `json:"profit"`
	Margin    float64 `json:"margin"`
}

// TrendPointResponse is one day of the rolling profit trend
type TrendPointResponse struct {
	Date      string  `json:"date"`
	Profit    int64   `json:"profit"`
	Rolling30 float64 `json:"rolling_30"`
	Rolling60 float64 `json:"rolling_60"`
}

// ChannelShareResponse is one channel's share of sold revenue
type ChannelShareResponse struct {
	Channel    string  `json:"channel"`
	UnitsSold  int     `json:"units_sold"`
	Revenue    int64   `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// StatusValueResponse is held value per channel and status
type StatusValueResponse struct {
	Channel    string `json:"channel"`
	Status     string `json:"status"`
	Units      int    `json:"units"`
	TotalValue int64  `json:"total_value"`
}

// CategoryValueResponse is held value per category
type CategoryValueResponse struct {
	Category   string  `json:"category"`
	Units      int     `json:"units"`
	TotalValue int64   `json:"total_value"`
	Percentage float64 `json:"percentage"`
}

// InventoryValueResponse describes unsold stock
type InventoryValueResponse struct {
	TotalUnits    int                     `json:"total_units"`
	TotalValue    int64                   `json:"total_value"`
	ByStatus      []StatusValueResponse   `json:"by_status"`
	TopCategories []CategoryValueResponse `json:"top_categories"`
}

// ProductPerformanceResponse is one ranked product
type ProductPerformanceResponse struct {
	Rank            int      `json:"rank"`
	ProductID       string   `json:"product_id"`
	ProductName     string   `json:"product_name"`
	Category        string   `json:"category"`
	Channels        []string `json:"channels"`
	UnitsSold       int      `json:"units_sold"`
	Revenue         int64    `json:"revenue"`
	Cost            int64    `json:"cost"`
	Profit          int64    `json:"profit"`
	AverageProfit   int64    `json:"average_profit"`
	MedianSoldPrice int64    `json:"median_sold_price"`
}

// SellThroughResponse is one category's sell-through rate
type SellThroughResponse struct {
	Category string  `json:"category"`
	Acquired int     `json:"acquired"`
	Sold     int     `json:"sold"`
	Rate     float64 `json:"rate"`
}

// FunnelStageResponse is one listing funnel stage
type FunnelStageResponse struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// AgingBucketResponse is one holding-age histogram bucket
type AgingBucketResponse struct {
	Label      string `json:"label"`
	StartDay   int    `json:"start_day"`
	EndDay     *int   `json:"end_day"`
	Count      int    `json:"count"`
	TotalValue int64  `json:"total_value"`
}

// ROIGroupResponse is one side of the repair comparison
type ROIGroupResponse struct {
	Count         int     `json:"count"`
	Revenue       int64   `json:"revenue"`
	Cost          int64   `json:"cost"`
	Profit        int64   `json:"profit"`
	AverageProfit int64   `json:"average_profit"`
	Margin        float64 `json:"margin"`
}

// RepairROIResponse compares refurbished and standard resale
type RepairROIResponse struct {
	Refurbished ROIGroupResponse `json:"refurbished"`
	Standard    ROIGroupResponse `json:"standard"`
}

// PricePointResponse is one scatter point
type PricePointResponse struct {
	ItemID         string  `json:"item_id"`
	ProductName    string  `json:"product_name"`
	Category       string  `json:"category"`
	Channel        string  `json:"channel"`
	Price          int64   `json:"price"`
	Profit         int64   `json:"profit"`
	Margin         float64 `json:"margin"`
	BelowMinMargin bool    `json:"below_min_margin"`
}

// DashboardResponse bundles every analytics table
type DashboardResponse struct {
	Filter             FilterResponse               `json:"filter"`
	GeneratedAt        time.Time                    `json:"generated_at"`
	MinMarginThreshold float64                      `json:"min_margin_threshold"`
	Summary            SummaryResponse              `json:"summary"`
	Monthly            []MonthlyFinancialResponse   `json:"monthly"`
	Trend              []TrendPointResponse         `json:"trend"`
	ChannelMix         []ChannelShareResponse       `json:"channel_mix"`
	Inventory          InventoryValueResponse       `json:"inventory"`
	TopProducts        []ProductPerformanceResponse `json:"top_products"`
	SellThrough        []SellThroughResponse        `json:"sell_through"`
	Funnel             []FunnelStageResponse        `json:"funnel"`
	Aging              []AgingBucketResponse        `json:"aging"`
	RepairROI          RepairROIResponse            `json:"repair_roi"`
	PriceMargin        []PricePointResponse         `json:"price_margin"`
}

// MonthlyFinancialsResponse is the standalone monthly table
type MonthlyFinancialsResponse struct {
	Filter FilterResponse             `json:"filter"`
	Months []MonthlyFinancialResponse `json:"months"`
}

// AgingHistogramResponse is the standalone aging table
type AgingHistogramResponse struct {
	Filter  FilterResponse        `json:"filter"`
	AsOf    time.Time             `json:"as_of"`
	Buckets []AgingBucketResponse `json:"buckets"`
}

// TopProductsResponse is the standalone product ranking
type TopProductsResponse struct {
	Filter   FilterResponse               `json:"filter"`
	Products []ProductPerformanceResponse `json:"products"`
}

// SnapshotResponse describes a stored dashboard snapshot
type SnapshotResponse struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
	GeneratedAt time.Time `json:"generated_at"`
	SizeBytes   int       `json:"size_bytes"`
}

// ratios are exposed with four decimals, percentages and averages with two
func roundRatio(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}

func roundPercent(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func toFilterResponse(f analytics.ReportFilter) FilterResponse {
	channels := make([]string, len(f.Channels))
	for i, c := range f.Channels {
		channels[i] = string(c)
	}
	return FilterResponse{
		StartDate: analytics.DayKey(f.StartDate),
		EndDate:   analytics.DayKey(f.EndDate),
		Timezone:  f.StartDate.Location().String(),
		Channels:  channels,
		Category:  f.Category,
	}
}

func toSummaryResponse(s analytics.Summary) SummaryResponse {
	return SummaryResponse{
		UnitsSold:         s.UnitsSold,
		Revenue:           s.Revenue,
		Cost:              s.Cost,
		Profit:            s.Profit,
		Margin:            roundRatio(s.Margin),
		UnitsAcquired:     s.UnitsAcquired,
		InventoryValue:    s.InventoryValue,
		AverageDaysToSell: roundPercent(s.AverageDaysToSell),
	}
}

func toMonthlyResponses(months []analytics.MonthlyFinancial) []MonthlyFinancialResponse {
	out := make([]MonthlyFinancialResponse, len(months))
	for i, m := range months {
		out[i] = MonthlyFinancialResponse{
			Month:     m.Month,
			UnitsSold: m.UnitsSold,
			Revenue:   m.Revenue,
			Cost:      m.Cost,
			Profit:    m.Profit,
			Margin:    roundRatio(m.Margin),
		}
	}
	return out
}

func toTrendResponses(points []analytics.TrendPoint) []TrendPointResponse {
	out := make([]TrendPointResponse, len(points))
	for i, p := range points {
		out[i] = TrendPointResponse{
			Date:      p.Date,
			Profit:    p.Profit,
			Rolling30: roundPercent(p.Rolling30),
			Rolling60: roundPercent(p.Rolling60),
		}
	}
	return out
}

func toChannelMixResponses(shares []analytics.ChannelShare) []ChannelShareResponse {
	out := make([]ChannelShareResponse, len(shares))
	for i, s := range shares {
		out[i] = ChannelShareResponse{
			Channel:    string(s.Channel),
			UnitsSold:  s.UnitsSold,
			Revenue:    s.Revenue,
			Percentage: roundPercent(s.Percentage),
		}
	}
	return out
}

func toInventoryResponse(v analytics.InventoryValue) InventoryValueResponse {
	out := InventoryValueResponse{
		TotalUnits:    v.TotalUnits,
		TotalValue:    v.TotalValue,
		ByStatus:      make([]StatusValueResponse, len(v.ByStatus)),
		TopCategories: make([]CategoryValueResponse, len(v.TopCategories)),
	}
	for i, s := range v.ByStatus {
		out.ByStatus[i] = StatusValueResponse{
			Channel:    string(s.Channel),
			Status:     string(s.Status),
			Units:      s.Units,
			TotalValue: s.TotalValue,
		}
	}
	for i, c := range v.TopCategories {
		out.TopCategories[i] = CategoryValueResponse{
			Category:   c.Category,
			Units:      c.Units,
			TotalValue: c.TotalValue,
			Percentage: roundPercent(c.Percentage),
		}
	}
	return out
}

func toProductResponses(products []analytics.ProductPerformance) []ProductPerformanceResponse {
	out := make([]ProductPerformanceResponse, len(products))
	for i, p := range products {
		channels := make([]string, len(p.Channels))
		for j, c := range p.Channels {
			channels[j] = string(c)
		}
		out[i] = ProductPerformanceResponse{
			Rank:            p.Rank,
			ProductID:       p.ProductID.String(),
			ProductName:     p.ProductName,
			Category:        p.Category,
			Channels:        channels,
			UnitsSold:       p.UnitsSold,
			Revenue:         p.Revenue,
			Cost:            p.Cost,
			Profit:          p.Profit,
			AverageProfit:   p.AverageProfit,
			MedianSoldPrice: p.MedianSoldPrice,
		}
	}
	return out
}

func toSellThroughResponses(rates []analytics.SellThrough) []SellThroughResponse {
	out := make([]SellThroughResponse, len(rates))
	for i, r := range rates {
		out[i] = SellThroughResponse{
			Category: r.Category,
			Acquired: r.Acquired,
			Sold:     r.Sold,
			Rate:     roundRatio(r.Rate),
		}
	}
	return out
}

func toFunnelResponses(stages []analytics.FunnelStage) []FunnelStageResponse {
	out := make([]FunnelStageResponse, len(stages))
	for i, s := range stages {
		out[i] = FunnelStageResponse{Stage: string(s.Stage), Count: s.Count}
	}
	return out
}

func toAgingResponses(buckets []analytics.AgingBucket) []AgingBucketResponse {
	out := make([]AgingBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = AgingBucketResponse{
			Label:      b.Label,
			StartDay:   b.StartDay,
			EndDay:     b.EndDay,
			Count:      b.Count,
			TotalValue: b.TotalValue,
		}
	}
	return out
}

func toROIGroupResponse(g analytics.ROIGroup) ROIGroupResponse {
	return ROIGroupResponse{
		Count:         g.Count,
		Revenue:       g.Revenue,
		Cost:          g.Cost,
		Profit:        g.Profit,
		AverageProfit: analytics.Average(g.Profit, g.Count),
		Margin:        roundRatio(g.Margin),
	}
}

func toPricePointResponses(points []analytics.PricePoint) []PricePointResponse {
	out := make([]PricePointResponse, len(points))
	for i, p := range points {
		out[i] = PricePointResponse{
			ItemID:         p.ItemID.String(),
			ProductName:    p.ProductName,
			Category:       p.Category,
			Channel:        string(p.Channel),
			Price:          p.Price,
			Profit:         p.Profit,
			Margin:         roundRatio(p.Margin),
			BelowMinMargin: p.BelowMinMargin,
		}
	}
	return out
}

func toDashboardResponse(d *analytics.Dashboard) *DashboardResponse {
	return &DashboardResponse{
		Filter:             toFilterResponse(d.Filter),
		GeneratedAt:        d.GeneratedAt,
		MinMarginThreshold: d.MinMarginThreshold,
		Summary:            toSummaryResponse(d.Summary),
		Monthly:            toMonthlyResponses(d.Monthly),
		Trend:              toTrendResponses(d.Trend),
		ChannelMix:         toChannelMixResponses(d.ChannelMix),
		Inventory:          toInventoryResponse(d.Inventory),
		TopProducts:        toProductResponses(d.TopProducts),
		SellThrough:        toSellThroughResponses(d.SellThrough),
		Funnel:             toFunnelResponses(d.Funnel),
		Aging:              toAgingResponses(d.Aging),
		RepairROI: RepairROIResponse{
			Refurbished: toROIGroupResponse(d.RepairROI.Refurbished),
			Standard:    toROIGroupResponse(d.RepairROI.Standard),
		},
		PriceMargin: toPricePointResponses(d.PriceMargin),
	}
}
