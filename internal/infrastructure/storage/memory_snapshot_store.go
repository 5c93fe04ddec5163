package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	analyticsapp "github.com/resale/backend/internal/application/analytics"
)

var _ analyticsapp.SnapshotStore = (*MemorySnapshotStore)(nil)

// MemoryObject is one stored snapshot
type MemoryObject struct {
	Data        []byte
	ContentType string
	StoredAt    time.Time
}

// MemorySnapshotStore keeps snapshots in process memory. It backs local
// development when no bucket is configured; links point at BaseURL.
type MemorySnapshotStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]MemoryObject
}

// NewMemorySnapshotStore creates an empty MemorySnapshotStore
func NewMemorySnapshotStore(baseURL string) *MemorySnapshotStore {
	if baseURL == "" {
		baseURL = "http://localhost:8080/api/v1/analytics/snapshots"
	}
	return &MemorySnapshotStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]MemoryObject),
	}
}

// Upload stores a copy of data under key
func (s *MemorySnapshotStore) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = MemoryObject{
		Data:        append([]byte(nil), data...),
		ContentType: contentType,
		StoredAt:    time.Now(),
	}
	return nil
}

// GenerateDownloadURL returns a link for a stored key
func (s *MemorySnapshotStore) GenerateDownloadURL(
	_ context.Context,
	key string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if _, ok := s.Get(key); !ok {
		return "", time.Time{}, errors.New("snapshot not found: " + key)
	}
	if expiresIn <= 0 {
		expiresIn = DefaultPresignExpiration
	}

	expiresAt := time.Now().Add(expiresIn)
	link := s.BaseURL + "/" + key + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339))
	return link, expiresAt, nil
}

// Get returns the object stored under key
func (s *MemorySnapshotStore) Get(key string) (MemoryObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored snapshots
func (s *MemorySnapshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
