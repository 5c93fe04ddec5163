package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/resale/backend/internal/infrastructure/storage"
	"github.com/resale/backend/internal/interfaces/http/router"
)

// SnapshotReader looks up stored snapshots by key
type SnapshotReader interface {
	Get(key string) (storage.MemoryObject, bool)
}

// SnapshotHandler serves snapshots kept by the in-memory store, standing in
// for presigned object URLs when no bucket is configured
type SnapshotHandler struct {
	BaseHandler
	store SnapshotReader
	now   func() time.Time
}

// NewSnapshotHandler creates a new SnapshotHandler
func NewSnapshotHandler(store SnapshotReader) *SnapshotHandler {
	return &SnapshotHandler{store: store, now: time.Now}
}

// Routes declares the download endpoint
func (h *SnapshotHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("snapshots", "/analytics/snapshots")
	g.Handle(http.MethodGet, "/*key", "download a stored snapshot", h.Download)
	return g
}

// Download godoc
// @ID           downloadAnalyticsSnapshot
// @Summary      Download a dashboard snapshot
// @Description  Returns the stored dashboard JSON. Only available when snapshots are kept in memory.
// @Tags         analytics
// @Produce      json
// @Param        key     path  string true  "Snapshot key"
// @Param        expires query string false "Link expiry (RFC3339)"
// @Success      200 {object} analyticsapp.DashboardResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /analytics/snapshots/{key} [get]
func (h *SnapshotHandler) Download(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	if raw := c.Query("expires"); raw != "" {
		expiresAt, err := time.Parse(time.RFC3339, raw)
		if err != nil || h.now().After(expiresAt) {
			h.NotFound(c, "Snapshot link has expired")
			return
		}
	}

	obj, ok := h.store.Get(key)
	if !ok {
		h.NotFound(c, "Snapshot not found")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+key[strings.LastIndex(key, "/")+1:]+`"`)
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}
