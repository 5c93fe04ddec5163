// Package analytics is the application service in front of the aggregation
// engine: it loads a record snapshot, runs the engine and shapes responses.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/resale/backend/internal/domain/analytics"
	"github.com/resale/backend/internal/domain/shared"
	"github.com/resale/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// MaxResultLimit caps caller-supplied ranking sizes
const MaxResultLimit = 100

// AnalyticsService provides dashboard and per-table analytics reads
type AnalyticsService struct {
	repo    analytics.RecordRepository
	engine  *analytics.Engine
	clock   Clock
	logger  *zap.Logger
	metrics *telemetry.AnalyticsMetrics

	snapshots         SnapshotStore
	snapshotPrefix    string
	snapshotURLExpiry time.Duration
}

// ServiceOption configures optional collaborators of AnalyticsService
type ServiceOption func(*AnalyticsService)

// WithMetrics records computation metrics on m
func WithMetrics(m *telemetry.AnalyticsMetrics) ServiceOption {
	return func(s *AnalyticsService) {
		s.metrics = m
	}
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	repo analytics.RecordRepository,
	engine *analytics.Engine,
	clock Clock,
	logger *zap.Logger,
	opts ...ServiceOption,
) *AnalyticsService {
	if clock == nil {
		clock = NewSystemClock(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AnalyticsService{
		repo:              repo,
		engine:            engine,
		clock:             clock,
		logger:            logger,
		snapshotPrefix:    DefaultSnapshotPrefix,
		snapshotURLExpiry: DefaultSnapshotURLExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot is the input shared by every read: one resolved filter, one
// materialised record set and the instant they were taken at
type snapshot struct {
	filter  analytics.ReportFilter
	records []analytics.InventoryRecord
	now     time.Time
}

// run loads a snapshot for q and hands it to compute inside a traced and
// measured span
func (s *AnalyticsService) run(ctx context.Context, operation string, q DashboardQuery, compute func(snapshot)) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "analytics", operation)
	defer span.End()
	started := time.Now()

	now := s.clock.Now()
	filter := s.engine.Resolve(q.rawFilter(), now)

	channels := make([]string, len(filter.Channels))
	for i, c := range filter.Channels {
		channels[i] = string(c)
	}
	span.SetAttributes(
		telemetry.AttrStartDate.String(analytics.DayKey(filter.StartDate)),
		telemetry.AttrEndDate.String(analytics.DayKey(filter.EndDate)),
		telemetry.AttrChannels.StringSlice(channels),
		telemetry.AttrCategory.String(filter.Category),
	)

	records, err := s.repo.FindRecords(ctx, analytics.QueryFor(filter))
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.Record(ctx, operation, 0, time.Since(started), err)
		s.logger.Error("Failed to load inventory records",
			zap.String("operation", operation),
			zap.String("trace_id", telemetry.TraceID(ctx)),
			zap.Error(err))
		return shared.ErrSourceUnavailable.Wrap(fmt.Errorf("find records: %w", err))
	}
	span.SetAttributes(telemetry.AttrRecordCount.Int(len(records)))

	compute(snapshot{filter: filter, records: records, now: now})

	elapsed := time.Since(started)
	s.metrics.Record(ctx, operation, len(records), elapsed, nil)
	s.logger.Debug("Analytics computed",
		zap.String("operation", operation),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", elapsed))
	telemetry.SetOK(span)
	return nil
}

// engineFor returns the configured engine, or a copy ranking limit products
func (s *AnalyticsService) engineFor(limit int) *analytics.Engine {
	if limit <= 0 {
		return s.engine
	}
	cfg := s.engine.Config()
	cfg.TopProductsLimit = min(limit, MaxResultLimit)
	return analytics.NewEngine(cfg)
}

// GetDashboard computes every analytics table for q
func (s *AnalyticsService) GetDashboard(ctx context.Context, q DashboardQuery) (*DashboardResponse, error) {
	var resp *DashboardResponse
	err := s.run(ctx, "dashboard", q, func(in snapshot) {
		d := s.engineFor(q.Limit).Compute(in.records, in.filter, in.now)
		resp = toDashboardResponse(d)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetMonthlyFinancials returns the monthly financial table only
func (s *AnalyticsService) GetMonthlyFinancials(ctx context.Context, q DashboardQuery) (*MonthlyFinancialsResponse, error) {
	var resp *MonthlyFinancialsResponse
	err := s.run(ctx, "monthly", q, func(in snapshot) {
		sets := analytics.Select(in.records, in.filter)
		resp = &MonthlyFinancialsResponse{
			Filter: toFilterResponse(in.filter),
			Months: toMonthlyResponses(analytics.MonthlyFinancials(sets.Sold, in.filter)),
		}
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetAgingHistogram returns the holding-age histogram only
func (s *AnalyticsService) GetAgingHistogram(ctx context.Context, q DashboardQuery) (*AgingHistogramResponse, error) {
	var resp *AgingHistogramResponse
	err := s.run(ctx, "aging", q, func(in snapshot) {
		sets := analytics.Select(in.records, in.filter)
		resp = &AgingHistogramResponse{
			Filter:  toFilterResponse(in.filter),
			AsOf:    in.now,
			Buckets: toAgingResponses(analytics.AgingHistogram(sets.Acquired, in.now)),
		}
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTopProducts returns the product profit ranking only
func (s *AnalyticsService) GetTopProducts(ctx context.Context, q DashboardQuery) (*TopProductsResponse, error) {
	limit := s.engineFor(q.Limit).Config().TopProductsLimit

	var resp *TopProductsResponse
	err := s.run(ctx, "top_products", q, func(in snapshot) {
		sets := analytics.Select(in.records, in.filter)
		resp = &TopProductsResponse{
			Filter:   toFilterResponse(in.filter),
			Products: toProductResponses(analytics.TopProducts(sets.Sold, limit)),
		}
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
