package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/resale/backend/internal/application/analytics"
	"github.com/resale/backend/internal/interfaces/http/dto"
	"github.com/resale/backend/internal/interfaces/http/middleware"
	"github.com/resale/backend/internal/interfaces/http/router"
)

// AnalyticsReader is the part of the analytics service the HTTP layer calls
type AnalyticsReader interface {
	GetDashboard(ctx context.Context, q analyticsapp.DashboardQuery) (*analyticsapp.DashboardResponse, error)
	GetMonthlyFinancials(ctx context.Context, q analyticsapp.DashboardQuery) (*analyticsapp.MonthlyFinancialsResponse, error)
	GetAgingHistogram(ctx context.Context, q analyticsapp.DashboardQuery) (*analyticsapp.AgingHistogramResponse, error)
	GetTopProducts(ctx context.Context, q analyticsapp.DashboardQuery) (*analyticsapp.TopProductsResponse, error)
	ExportSnapshot(ctx context.Context, q analyticsapp.DashboardQuery) (*analyticsapp.SnapshotResponse, error)
}

// AnalyticsHandler serves the analytics read API
type AnalyticsHandler struct {
	BaseHandler
	service AnalyticsReader
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service AnalyticsReader) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Routes declares the analytics endpoints. Exporting a snapshot writes to
// object storage and needs the export permission.
func (h *AnalyticsHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("analytics", "/analytics")
	g.Handle(http.MethodGet, "/dashboard", "all dashboard tables", h.GetDashboard)
	g.Handle(http.MethodGet, "/monthly", "monthly revenue, cost and profit", h.GetMonthlyFinancials)
	g.Handle(http.MethodGet, "/aging", "holding-age histogram", h.GetAgingHistogram)
	g.Handle(http.MethodGet, "/top-products", "products ranked by profit", h.GetTopProducts)
	g.Handle(http.MethodPost, "/snapshots", "store a dashboard snapshot",
		middleware.RequirePermission(middleware.PermissionExportSnapshot), h.ExportSnapshot)
	return g
}

// bindQuery reads the shared analytics query string; it writes the 400 itself
func (h *AnalyticsHandler) bindQuery(c *gin.Context) (analyticsapp.DashboardQuery, bool) {
	var req dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return analyticsapp.DashboardQuery{}, false
	}
	return analyticsapp.DashboardQuery{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Channels:  req.Channels,
		Category:  req.Category,
		Limit:     req.Limit,
	}, true
}

// GetDashboard godoc
// @ID           getAnalyticsDashboard
// @Summary      Get the analytics dashboard
// @Description  Computes every dashboard table for the filtered record set. Unparseable dates fall back to the trailing twelve months and unknown channels are ignored.
// @Tags         analytics
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date   query string false "End date (YYYY-MM-DD)"
// @Param        channel    query []string false "Sales channel, repeatable (ONLINE, RETAIL, MARKETPLACE, WHOLESALE, SOCIAL)" collectionFormat(multi)
// @Param        category   query string false "Product category, case-insensitive"
// @Param        limit      query int false "Top products to rank (1-100)"
// @Success      200 {object} APIResponse[analyticsapp.DashboardResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetDashboard(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetMonthlyFinancials godoc
// @ID           getAnalyticsMonthly
// @Summary      Get monthly financials
// @Description  Revenue, cost, profit and units sold per calendar month of the window, empty months included
// @Tags         analytics
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date   query string false "End date (YYYY-MM-DD)"
// @Param        channel    query []string false "Sales channel, repeatable" collectionFormat(multi)
// @Param        category   query string false "Product category"
// @Success      200 {object} APIResponse[analyticsapp.MonthlyFinancialsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /analytics/monthly [get]
func (h *AnalyticsHandler) GetMonthlyFinancials(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetMonthlyFinancials(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetAgingHistogram godoc
// @ID           getAnalyticsAging
// @Summary      Get the inventory aging histogram
// @Description  Acquired units bucketed by days held, until sale for sold units and until now otherwise
// @Tags         analytics
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date   query string false "End date (YYYY-MM-DD)"
// @Param        channel    query []string false "Sales channel, repeatable" collectionFormat(multi)
// @Param        category   query string false "Product category"
// @Success      200 {object} APIResponse[analyticsapp.AgingHistogramResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /analytics/aging [get]
func (h *AnalyticsHandler) GetAgingHistogram(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetAgingHistogram(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetTopProducts godoc
// @ID           getAnalyticsTopProducts
// @Summary      Get top products by profit
// @Tags         analytics
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date   query string false "End date (YYYY-MM-DD)"
// @Param        channel    query []string false "Sales channel, repeatable" collectionFormat(multi)
// @Param        category   query string false "Product category"
// @Param        limit      query int false "Products to return (1-100)"
// @Success      200 {object} APIResponse[analyticsapp.TopProductsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /analytics/top-products [get]
func (h *AnalyticsHandler) GetTopProducts(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.GetTopProducts(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExportSnapshot godoc
// @ID           createAnalyticsSnapshot
// @Summary      Export a dashboard snapshot
// @Description  Computes the dashboard, stores it as a JSON object and returns a time-limited download link
// @Tags         analytics
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date   query string false "End date (YYYY-MM-DD)"
// @Param        channel    query []string false "Sales channel, repeatable" collectionFormat(multi)
// @Param        category   query string false "Product category"
// @Param        limit      query int false "Top products to rank (1-100)"
// @Success      201 {object} APIResponse[analyticsapp.SnapshotResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /analytics/snapshots [post]
func (h *AnalyticsHandler) ExportSnapshot(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.ExportSnapshot(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
