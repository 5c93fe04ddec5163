package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/resale/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/v1/analytics/top-products", func(c *gin.Context) {
		var q dto.AnalyticsQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(q))
	})
	return router
}

func TestHandleValidationError(t *testing.T) {
	router := validationRouter()

	tests := []struct {
		name        string
		query       string
		wantStatus  int
		wantField   string
		wantMessage string
	}{
		{"valid", "?limit=5&category=phones", http.StatusOK, "", ""},
		{"limit too large", "?limit=500", http.StatusBadRequest, "limit", "Must be at most 100"},
		{"limit zero", "?limit=0", http.StatusOK, "", ""},
		{"limit negative", "?limit=-1", http.StatusBadRequest, "limit", "Must be at least 1"},
		{"category too long", "?category=" + strings.Repeat("a", 51), http.StatusBadRequest, "category", "Must be at most 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/top-products"+tt.query, nil))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantField == "" {
				return
			}
			resp := decodeResponse(t, w)
			assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)
			assert.NotEmpty(t, resp.Error.RequestID)
			require.Len(t, resp.Error.Details, 1)
			assert.Equal(t, tt.wantField, resp.Error.Details[0].Field)
			assert.Equal(t, tt.wantMessage, resp.Error.Details[0].Message)
		})
	}
}

func TestHandleValidationError_NotANumber(t *testing.T) {
	w := httptest.NewRecorder()
	validationRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/top-products?limit=ten", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}
