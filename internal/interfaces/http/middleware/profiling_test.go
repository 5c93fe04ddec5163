package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfilingWithConfig_Labels(t *testing.T) {
	type seen struct {
		method, route, report string
		hasReport             bool
	}
	var got seen

	router := gin.New()
	router.Use(ProfilingWithConfig(DefaultProfilingConfig()))
	capture := func(c *gin.Context) {
		ctx := c.Request.Context()
		got.method, _ = pprof.Label(ctx, ProfilingLabelMethod)
		got.route, _ = pprof.Label(ctx, ProfilingLabelRoute)
		got.report, got.hasReport = pprof.Label(ctx, ProfilingLabelReport)
		c.Status(http.StatusOK)
	}
	router.GET("/api/v1/analytics/top-products", capture)
	router.GET("/api/v1/snapshots/:key", capture)
	router.GET("/health", capture)

	tests := []struct {
		path string
		want seen
	}{
		{"/api/v1/analytics/top-products", seen{http.MethodGet, "/api/v1/analytics/top-products", "top-products", true}},
		{"/api/v1/snapshots/abc", seen{http.MethodGet, "/api/v1/snapshots/:key", "", false}},
		{"/health", seen{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got = seen{}
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfilingWithConfig_Disabled(t *testing.T) {
	var labelled bool
	router := gin.New()
	router.Use(ProfilingWithConfig(ProfilingConfig{Enabled: false}))
	router.GET("/api/v1/analytics/dashboard", func(c *gin.Context) {
		_, labelled = pprof.Label(c.Request.Context(), ProfilingLabelRoute)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, labelled)
}

func TestReportFromRoute(t *testing.T) {
	assert.Equal(t, "dashboard", reportFromRoute("/api/v1/analytics/dashboard"))
	assert.Equal(t, "snapshots", reportFromRoute("/api/v1/analytics/snapshots/:key"))
	assert.Empty(t, reportFromRoute("/health"))
}
