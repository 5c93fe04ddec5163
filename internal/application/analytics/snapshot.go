package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resale/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Snapshot defaults
const (
	DefaultSnapshotPrefix    = "dashboards"
	DefaultSnapshotURLExpiry = 15 * time.Minute
)

// SnapshotStore persists exported dashboards as objects
type SnapshotStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// WithSnapshotStore enables ExportSnapshot. An empty prefix or non-positive
// expiry keeps the defaults.
func WithSnapshotStore(store SnapshotStore, prefix string, urlExpiry time.Duration) ServiceOption {
	return func(s *AnalyticsService) {
		s.snapshots = store
		if p := strings.Trim(prefix, "/"); p != "" {
			s.snapshotPrefix = p
		}
		if urlExpiry > 0 {
			s.snapshotURLExpiry = urlExpiry
		}
	}
}

// ExportSnapshot computes the dashboard for q, stores it as JSON and returns
// a time-limited download link
func (s *AnalyticsService) ExportSnapshot(ctx context.Context, q DashboardQuery) (*SnapshotResponse, error) {
	if s.snapshots == nil {
		return nil, shared.ErrExportFailed.Wrap(errors.New("snapshot storage is not configured"))
	}

	dashboard, err := s.GetDashboard(ctx, q)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(dashboard)
	if err != nil {
		return nil, shared.ErrExportFailed.Wrap(fmt.Errorf("encode dashboard: %w", err))
	}

	key := s.snapshotKey(dashboard.GeneratedAt)
	if err := s.snapshots.Upload(ctx, key, body, "application/json"); err != nil {
		s.logger.Error("Failed to upload dashboard snapshot", zap.String("key", key), zap.Error(err))
		return nil, shared.ErrExportFailed.Wrap(err)
	}

	url, expiresAt, err := s.snapshots.GenerateDownloadURL(ctx, key, s.snapshotURLExpiry)
	if err != nil {
		return nil, shared.ErrExportFailed.Wrap(err)
	}

	s.logger.Info("Dashboard snapshot stored", zap.String("key", key), zap.Int("bytes", len(body)))
	return &SnapshotResponse{
		Key:         key,
		URL:         url,
		ExpiresAt:   expiresAt,
		GeneratedAt: dashboard.GeneratedAt,
		SizeBytes:   len(body),
	}, nil
}

// snapshotKey lays objects out as {prefix}/YYYY/MM/DD/{uuid}.json
func (s *AnalyticsService) snapshotKey(at time.Time) string {
	return fmt.Sprintf("%s/%s/%s.json", s.snapshotPrefix, at.Format("2006/01/02"), uuid.New())
}
