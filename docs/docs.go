// Package docs registers the OpenAPI document served at /swagger. Regenerate
// with `swag init -g cmd/server/main.go` after changing handler annotations.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/analytics/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Computes every dashboard table for the filtered record set. Unparseable dates fall back to the trailing twelve months and unknown channels are ignored.",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Get the analytics dashboard",
                "operationId": "getAnalyticsDashboard",
                "parameters": [
                    {"$ref": "#/parameters/StartDate"},
                    {"$ref": "#/parameters/EndDate"},
                    {"$ref": "#/parameters/Channel"},
                    {"$ref": "#/parameters/Category"},
                    {"$ref": "#/parameters/Limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse-analytics_DashboardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analytics/monthly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Revenue, cost, profit and units sold per calendar month of the window, empty months included",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Get monthly financials",
                "operationId": "getAnalyticsMonthly",
                "parameters": [
                    {"$ref": "#/parameters/StartDate"},
                    {"$ref": "#/parameters/EndDate"},
                    {"$ref": "#/parameters/Channel"},
                    {"$ref": "#/parameters/Category"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse-analytics_MonthlyFinancialsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analytics/aging": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Acquired units bucketed by days held, until sale for sold units and until now otherwise",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Get the inventory aging histogram",
                "operationId": "getAnalyticsAging",
                "parameters": [
                    {"$ref": "#/parameters/StartDate"},
                    {"$ref": "#/parameters/EndDate"},
                    {"$ref": "#/parameters/Channel"},
                    {"$ref": "#/parameters/Category"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse-analytics_AgingHistogramResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analytics/top-products": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Get top products by profit",
                "operationId": "getAnalyticsTopProducts",
                "parameters": [
                    {"$ref": "#/parameters/StartDate"},
                    {"$ref": "#/parameters/EndDate"},
                    {"$ref": "#/parameters/Channel"},
                    {"$ref": "#/parameters/Category"},
                    {"$ref": "#/parameters/Limit"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse-analytics_TopProductsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analytics/snapshots": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Computes the dashboard, stores it as a JSON object and returns a time-limited download link",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Export a dashboard snapshot",
                "operationId": "createAnalyticsSnapshot",
                "parameters": [
                    {"$ref": "#/parameters/StartDate"},
                    {"$ref": "#/parameters/EndDate"},
                    {"$ref": "#/parameters/Channel"},
                    {"$ref": "#/parameters/Category"},
                    {"$ref": "#/parameters/Limit"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.APIResponse-analytics_SnapshotResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/analytics/snapshots/{key}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the stored dashboard JSON. Only available when snapshots are kept in memory.",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Download a dashboard snapshot",
                "operationId": "downloadAnalyticsSnapshot",
                "parameters": [
                    {"type": "string", "description": "Snapshot key", "name": "key", "in": "path", "required": true},
                    {"type": "string", "description": "Link expiry (RFC3339)", "name": "expires", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/analytics.DashboardResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/system/info": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns the service name, version and uptime",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Get system information",
                "operationId": "getSystemInfo",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse-HandlerSystemInfoResponse"}}
                }
            }
        }
    },
    "parameters": {
        "StartDate": {"type": "string", "description": "Start date (YYYY-MM-DD)", "name": "start_date", "in": "query"},
        "EndDate": {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "end_date", "in": "query"},
        "Channel": {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Sales channel, repeatable (ONLINE, RETAIL, MARKETPLACE, WHOLESALE, SOCIAL)", "name": "channel", "in": "query"},
        "Category": {"type": "string", "description": "Product category, case-insensitive", "name": "category", "in": "query"},
        "Limit": {"type": "integer", "description": "Top products to rank (1-100)", "name": "limit", "in": "query"}
    },
    "definitions": {
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "ERR_SOURCE_UNAVAILABLE"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/dto.ValidationDetail"}}
            }
        },
        "dto.ValidationDetail": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "limit"},
                "message": {"type": "string", "example": "Must be at most 100"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/dto.ErrorInfo"}
            }
        },
        "analytics.FilterResponse": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string", "example": "2026-01-01"},
                "end_date": {"type": "string", "example": "2026-03-31"},
                "timezone": {"type": "string", "example": "UTC"},
                "channels": {"type": "array", "items": {"type": "string"}},
                "category": {"type": "string"}
            }
        },
        "analytics.DashboardResponse": {
            "type": "object",
            "description": "Every dashboard table. Money is in minor currency units, margins are ratios.",
            "properties": {
                "filter": {"$ref": "#/definitions/analytics.FilterResponse"},
                "generated_at": {"type": "string", "format": "date-time"},
                "min_margin_threshold": {"type": "number"},
                "summary": {"type": "object"},
                "monthly": {"type": "array", "items": {"type": "object"}},
                "trend": {"type": "array", "items": {"type": "object"}},
                "channel_mix": {"type": "array", "items": {"type": "object"}},
                "inventory": {"type": "object"},
                "top_products": {"type": "array", "items": {"type": "object"}},
                "sell_through": {"type": "array", "items": {"type": "object"}},
                "funnel": {"type": "array", "items": {"type": "object"}},
                "aging": {"type": "array", "items": {"type": "object"}},
                "repair_roi": {"type": "object"},
                "price_margin": {"type": "array", "items": {"type": "object"}}
            }
        },
        "analytics.SnapshotResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string", "example": "dashboards/2026/04/01/0b4e.json"},
                "url": {"type": "string"},
                "expires_at": {"type": "string", "format": "date-time"},
                "generated_at": {"type": "string", "format": "date-time"},
                "size_bytes": {"type": "integer"}
            }
        },
        "handler.APIResponse-analytics_DashboardResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/analytics.DashboardResponse"}, "error": {"$ref": "#/definitions/dto.ErrorInfo"}}
        },
        "handler.APIResponse-analytics_MonthlyFinancialsResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "object", "properties": {"filter": {"$ref": "#/definitions/analytics.FilterResponse"}, "months": {"type": "array", "items": {"type": "object"}}}}, "error": {"$ref": "#/definitions/dto.ErrorInfo"}}
        },
        "handler.APIResponse-analytics_AgingHistogramResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "object", "properties": {"filter": {"$ref": "#/definitions/analytics.FilterResponse"}, "as_of": {"type": "string", "format": "date-time"}, "buckets": {"type": "array", "items": {"type": "object"}}}}, "error": {"$ref": "#/definitions/dto.ErrorInfo"}}
        },
        "handler.APIResponse-analytics_TopProductsResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "object", "properties": {"filter": {"$ref": "#/definitions/analytics.FilterResponse"}, "products": {"type": "array", "items": {"type": "object"}}}}, "error": {"$ref": "#/definitions/dto.ErrorInfo"}}
        },
        "handler.APIResponse-analytics_SnapshotResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"$ref": "#/definitions/analytics.SnapshotResponse"}, "error": {"$ref": "#/definitions/dto.ErrorInfo"}}
        },
        "handler.APIResponse-HandlerSystemInfoResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "data": {"type": "object", "properties": {"name": {"type": "string"}, "version": {"type": "string"}, "go_version": {"type": "string"}, "uptime": {"type": "string"}}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Resale Analytics API",
	Description:      "Inventory and sales analytics for a second-hand electronics business",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
