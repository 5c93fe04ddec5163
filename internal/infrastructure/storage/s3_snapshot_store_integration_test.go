//go:build integration

package storage

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/resale/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

const (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin123"
)

func newMinioStore(t *testing.T) *S3SnapshotStore {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     minioUser,
				"MINIO_ROOT_PASSWORD": minioPassword,
			},
			Cmd: []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").
				WithPort("9000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start MinIO container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "http")
	require.NoError(t, err)

	store, err := NewS3SnapshotStore(&config.StorageConfig{
		Endpoint:     endpoint,
		Bucket:       "snapshots-it",
		AccessKey:    minioUser,
		SecretKey:    minioPassword,
		UsePathStyle: true,
	}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	require.NoError(t, store.EnsureBucket(ctx))
	// second call finds the existing bucket
	require.NoError(t, store.EnsureBucket(ctx))
	return store
}

func TestIntegration_S3SnapshotStore_UploadAndDownload(t *testing.T) {
	store := newMinioStore(t)
	ctx := context.Background()
	key := "dashboards/2026/04/10/it.json"
	body := []byte(`{"summary":{"units_sold":3}}`)

	exists, err := store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Upload(ctx, key, body, "application/json"))

	exists, err = store.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	url, _, err := store.GenerateDownloadURL(ctx, key, time.Minute)
	require.NoError(t, err)

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, body, got)
}
