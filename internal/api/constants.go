package api

// API metadata.
const (
	APITitle       = "Attendance Insights API"
	DefaultVersion = "1.0.0"
)

// apiPrefix scopes rate limiting to the analytics endpoints.
const apiPrefix = "/api/"

// OpenAPI tags.
const (
	tagHealth    = "Health"
	tagAnalytics = "Analytics"
	tagFields    = "Fields"
)

// Cache-Control header values.
const (
	CacheNoStore = "no-cache"
)
