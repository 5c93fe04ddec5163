package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

func TestSwaggerDocument(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "/api/v1", parsed.BasePath)
	for _, p := range []string{"/analytics/dashboard", "/analytics/monthly", "/analytics/aging", "/analytics/top-products"} {
		assert.Contains(t, parsed.Paths[p], "get", p)
	}
	assert.Contains(t, parsed.Paths["/analytics/snapshots"], "post")
}

func TestSwaggerDocument_Descriptions(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]struct {
			Description string `json:"description"`
		} `json:"paths"`
		Parameters map[string]struct {
			Description string `json:"description"`
		} `json:"parameters"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	aging := parsed.Paths["/analytics/aging"]["get"].Description
	assert.Contains(t, aging, "sold units")
	assert.NotContains(t, aging, "still held")

	channels := parsed.Parameters["Channel"].Description
	for _, c := range []string{"ONLINE", "RETAIL", "MARKETPLACE", "WHOLESALE", "SOCIAL"} {
		assert.Contains(t, channels, c)
	}
}
