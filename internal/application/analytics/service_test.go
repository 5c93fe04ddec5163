package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resale/backend/internal/domain/analytics"
	"github.com/resale/backend/internal/domain/shared"
	"github.com/resale/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

// MockRecordRepository is a mock implementation of analytics.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindRecords(ctx context.Context, q analytics.RecordQuery) ([]analytics.InventoryRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.InventoryRecord), args.Error(1)
}

// MockSnapshotStore is a mock implementation of SnapshotStore
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockSnapshotStore) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var testNow = time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func soldRecord(product uuid.UUID, name string, acquired, sold time.Time, price, cost int64) analytics.InventoryRecord {
	return analytics.InventoryRecord{
		ItemID:      uuid.New(),
		ProductID:   product,
		ProductName: name,
		Category:    "phones",
		Channel:     analytics.ChannelOnline,
		Status:      analytics.StatusSold,
		AcquiredAt:  acquired,
		SoldAt:      &sold,
		Price:       price,
		Cost:        cost,
	}
}

func testRecords() []analytics.InventoryRecord {
	phone := uuid.New()
	tablet := uuid.New()
	watch := uuid.New()
	return []analytics.InventoryRecord{
		soldRecord(phone, "Phone X", day(2026, time.January, 3), day(2026, time.February, 10), 3_000, 2_000),
		soldRecord(tablet, "Tablet S", day(2026, time.January, 5), day(2026, time.March, 1), 6_000, 5_000),
		soldRecord(watch, "Watch 2", day(2026, time.February, 5), day(2026, time.March, 2), 1_500, 1_000),
		{
			ItemID:      uuid.New(),
			ProductID:   uuid.New(),
			ProductName: "Phone Y",
			Category:    "phones",
			Channel:     analytics.ChannelRetail,
			Status:      analytics.StatusInStock,
			AcquiredAt:  day(2026, time.March, 25),
			Price:       900,
			Cost:        700,
		},
	}
}

func newTestService(t *testing.T, repo *MockRecordRepository, opts ...ServiceOption) *AnalyticsService {
	t.Helper()
	return NewAnalyticsService(
		repo,
		analytics.NewEngine(analytics.DefaultEngineConfig()),
		FixedClock{At: testNow},
		zaptest.NewLogger(t),
		opts...,
	)
}

func TestAnalyticsService_GetDashboard(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("FindRecords", mock.Anything, mock.MatchedBy(func(q analytics.RecordQuery) bool {
		return q.From.Equal(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)) &&
			len(q.Channels) == len(analytics.AllChannels()) &&
			q.Category == ""
	})).Return(testRecords(), nil)

	svc := newTestService(t, repo)
	resp, err := svc.GetDashboard(context.Background(), DashboardQuery{
		StartDate: "2026-01-01",
		EndDate:   "2026-03-31",
	})

	require.NoError(t, err)
	assert.Equal(t, testNow, resp.GeneratedAt)
	assert.Equal(t, "2026-01-01", resp.Filter.StartDate)
	assert.Equal(t, "2026-03-31", resp.Filter.EndDate)
	assert.Equal(t, "UTC", resp.Filter.Timezone)

	assert.Equal(t, 3, resp.Summary.UnitsSold)
	assert.Equal(t, int64(10_500), resp.Summary.Revenue)
	assert.Equal(t, int64(8_000), resp.Summary.Cost)
	assert.Equal(t, int64(2_500), resp.Summary.Profit)
	assert.Equal(t, 0.2381, resp.Summary.Margin)

	require.Len(t, resp.Monthly, 3)
	assert.Equal(t, "2026-01", resp.Monthly[0].Month)
	assert.Equal(t, int64(1_000), resp.Monthly[1].Profit)
	assert.Equal(t, 0.3333, resp.Monthly[1].Margin)

	require.Len(t, resp.TopProducts, 3)
	assert.Equal(t, 1, resp.TopProducts[0].Rank)
	assert.Equal(t, "Phone X", resp.TopProducts[0].ProductName)

	require.Len(t, resp.ChannelMix, 1)
	assert.Equal(t, 100.0, resp.ChannelMix[0].Percentage)
	assert.Len(t, resp.Trend, 90)
	assert.Len(t, resp.Aging, analytics.AgingBucketCount)

	repo.AssertExpectations(t)
}

func TestAnalyticsService_GetDashboard_RepositoryError(t *testing.T) {
	repo := new(MockRecordRepository)
	cause := errors.New("connection refused")
	repo.On("FindRecords", mock.Anything, mock.Anything).Return(nil, cause)

	svc := newTestService(t, repo)
	resp, err := svc.GetDashboard(context.Background(), DashboardQuery{})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
	assert.ErrorIs(t, err, cause)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ANALYTICS_SOURCE_UNAVAILABLE", domainErr.Code)
}

func TestAnalyticsService_PassesFilterToRepository(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("FindRecords", mock.Anything, mock.Anything).Return([]analytics.InventoryRecord{}, nil)

	svc := newTestService(t, repo)
	_, err := svc.GetDashboard(context.Background(), DashboardQuery{
		StartDate: "2026-02-01",
		EndDate:   "2026-02-28",
		Channels:  []string{"social", "bogus", "online"},
		Category:  " Phones ",
	})
	require.NoError(t, err)

	q := repo.Calls[0].Arguments.Get(1).(analytics.RecordQuery)
	assert.Equal(t, []analytics.Channel{analytics.ChannelOnline, analytics.ChannelSocial}, q.Channels)
	assert.Equal(t, "phones", q.Category)
	assert.True(t, q.From.Equal(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 28, q.To.Day())
}

func TestAnalyticsService_LimitOverride(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("FindRecords", mock.Anything, mock.Anything).Return(testRecords(), nil)
	svc := newTestService(t, repo)
	q := DashboardQuery{StartDate: "2026-01-01", EndDate: "2026-03-31"}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"configured limit", 0, 3},
		{"smaller limit", 2, 2},
		{"single product", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q.Limit = tt.limit
			resp, err := svc.GetDashboard(context.Background(), q)
			require.NoError(t, err)
			assert.Len(t, resp.TopProducts, tt.want)

			top, err := svc.GetTopProducts(context.Background(), q)
			require.NoError(t, err)
			assert.Equal(t, resp.TopProducts, top.Products)
		})
	}
}

func TestAnalyticsService_EngineForCapsLimit(t *testing.T) {
	svc := newTestService(t, new(MockRecordRepository))

	assert.Same(t, svc.engine, svc.engineFor(0))
	assert.Equal(t, 5, svc.engineFor(5).Config().TopProductsLimit)
	assert.Equal(t, MaxResultLimit, svc.engineFor(5000).Config().TopProductsLimit)
}

func TestAnalyticsService_GetMonthlyFinancials(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("FindRecords", mock.Anything, mock.Anything).Return(testRecords(), nil)

	svc := newTestService(t, repo)
	resp, err := svc.GetMonthlyFinancials(context.Background(), DashboardQuery{
		StartDate: "2026-01-15",
		EndDate:   "2026-03-15",
	})

	require.NoError(t, err)
	require.Len(t, resp.Months, 3)
	assert.Equal(t, "2026-01", resp.Months[0].Month)
	assert.Equal(t, int64(0), resp.Months[0].Revenue)
	assert.Equal(t, int64(3_000), resp.Months[1].Revenue)
	assert.Equal(t, int64(7_500), resp.Months[2].Revenue)
	assert.Equal(t, int64(1_500), resp.Months[2].Profit)
	assert.Equal(t, 0.2, resp.Months[2].Margin)
}

func TestAnalyticsService_GetAgingHistogram(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("FindRecords", mock.Anything, mock.Anything).Return(testRecords(), nil)

	svc := newTestService(t, repo)
	resp, err := svc.GetAgingHistogram(context.Background(), DashboardQuery{
		StartDate: "2026-01-01",
		EndDate:   "2026-03-31",
	})

	require.NoError(t, err)
	assert.Equal(t, testNow, resp.AsOf)
	require.Len(t, resp.Buckets, analytics.AgingBucketCount)

	total := 0
	for _, b := range resp.Buckets {
		total += b.Count
	}
	assert.Equal(t, 4, total)
	// Phone Y was acquired 16 days before now
	assert.Equal(t, 1, resp.Buckets[1].Count)
	assert.Equal(t, int64(700), resp.Buckets[1].TotalValue)
	assert.Nil(t, resp.Buckets[analytics.AgingBucketCount-1].EndDay)
}

func TestAnalyticsService_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := telemetry.NewAnalyticsMetrics(provider.Meter("test"))
	require.NoError(t, err)

	repo := new(MockRecordRepository)
	repo.On("FindRecords", mock.Anything, mock.Anything).Return(testRecords(), nil).Once()
	repo.On("FindRecords", mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()

	svc := newTestService(t, repo, WithMetrics(metrics))
	_, err = svc.GetDashboard(context.Background(), DashboardQuery{})
	require.NoError(t, err)
	_, err = svc.GetDashboard(context.Background(), DashboardQuery{})
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var computations int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "analytics.computations" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				computations += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), computations)
}

func TestAnalyticsService_ExportSnapshot(t *testing.T) {
	repo := new(MockRecordRepository)
	repo.On("FindRecords", mock.Anything, mock.Anything).Return(testRecords(), nil)

	expires := testNow.Add(30 * time.Minute)
	store := new(MockSnapshotStore)
	store.On("Upload", mock.Anything,
		mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "exports/2026/04/10/") && strings.HasSuffix(key, ".json")
		}),
		mock.MatchedBy(func(data []byte) bool {
			var d DashboardResponse
			return json.Unmarshal(data, &d) == nil && d.Summary.UnitsSold == 3
		}),
		"application/json",
	).Return(nil)
	store.On("GenerateDownloadURL", mock.Anything, mock.AnythingOfType("string"), 30*time.Minute).
		Return("https://snapshots.example.com/signed", expires, nil)

	svc := newTestService(t, repo, WithSnapshotStore(store, "/exports/", 30*time.Minute))
	resp, err := svc.ExportSnapshot(context.Background(), DashboardQuery{
		StartDate: "2026-01-01",
		EndDate:   "2026-03-31",
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "exports/2026/04/10/"))
	assert.Equal(t, "https://snapshots.example.com/signed", resp.URL)
	assert.Equal(t, expires, resp.ExpiresAt)
	assert.Equal(t, testNow, resp.GeneratedAt)
	assert.Positive(t, resp.SizeBytes)

	uploadedKey := store.Calls[0].Arguments.String(1)
	downloadKey := store.Calls[1].Arguments.String(1)
	assert.Equal(t, uploadedKey, downloadKey)
	store.AssertExpectations(t)
}

func TestAnalyticsService_ExportSnapshot_Errors(t *testing.T) {
	t.Run("store not configured", func(t *testing.T) {
		svc := newTestService(t, new(MockRecordRepository))

		_, err := svc.ExportSnapshot(context.Background(), DashboardQuery{})
		assert.ErrorIs(t, err, shared.ErrExportFailed)
	})

	t.Run("upload fails", func(t *testing.T) {
		repo := new(MockRecordRepository)
		repo.On("FindRecords", mock.Anything, mock.Anything).Return(testRecords(), nil)
		store := new(MockSnapshotStore)
		store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("access denied"))

		svc := newTestService(t, repo, WithSnapshotStore(store, "", 0))
		_, err := svc.ExportSnapshot(context.Background(), DashboardQuery{})

		assert.ErrorIs(t, err, shared.ErrExportFailed)
		store.AssertNotCalled(t, "GenerateDownloadURL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("source unavailable", func(t *testing.T) {
		repo := new(MockRecordRepository)
		repo.On("FindRecords", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
		store := new(MockSnapshotStore)

		svc := newTestService(t, repo, WithSnapshotStore(store, "", 0))
		_, err := svc.ExportSnapshot(context.Background(), DashboardQuery{})

		assert.ErrorIs(t, err, shared.ErrSourceUnavailable)
		store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWithSnapshotStore_Defaults(t *testing.T) {
	svc := newTestService(t, new(MockRecordRepository), WithSnapshotStore(new(MockSnapshotStore), "", 0))

	assert.Equal(t, DefaultSnapshotPrefix, svc.snapshotPrefix)
	assert.Equal(t, DefaultSnapshotURLExpiry, svc.snapshotURLExpiry)
}

func TestSystemClock(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	assert.Equal(t, tokyo, NewSystemClock(tokyo).Now().Location())
	assert.Equal(t, time.Local, NewSystemClock(nil).Location)
}
