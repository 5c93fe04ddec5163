package middleware

import (
	"context"
	"path"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelMethod = "http_method"
	ProfilingLabelRoute  = "http_route"
	ProfilingLabelReport = "report"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

// DefaultProfilingConfig skips health checks and documentation.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// ProfilingWithConfig runs the handler chain under pprof labels for the
// method, the route pattern and the report being computed, so CPU and
// allocation profiles can be split per report in Pyroscope.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if slices.Contains(cfg.SkipPaths, p) || slices.ContainsFunc(cfg.SkipPathPrefixes, func(prefix string) bool {
			return strings.HasPrefix(p, prefix)
		}) {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}

		labels := []string{
			ProfilingLabelMethod, c.Request.Method,
			ProfilingLabelRoute, route,
		}
		if report := reportFromRoute(route); report != "" {
			labels = append(labels, ProfilingLabelReport, report)
		}

		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels(labels...), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// reportFromRoute names the analytics report a route serves,
// e.g. "/api/v1/analytics/top-products" -> "top-products"
func reportFromRoute(route string) string {
	if !strings.Contains(route, "/analytics/") {
		return ""
	}
	last := path.Base(route)
	if strings.HasPrefix(last, ":") || strings.HasPrefix(last, "*") {
		last = path.Base(path.Dir(route))
	}
	return last
}
