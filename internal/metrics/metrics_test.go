package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_ObserveDataset(t *testing.T) {
	m := New()

	m.ObserveDataset(120, 14, time.Unix(1700000000, 0))

	out := scrape(t, m)
	assert.Contains(t, out, "attendance_insights_dataset_records 120")
	assert.Contains(t, out, "attendance_insights_dataset_columns 14")
	assert.Contains(t, out, "attendance_insights_dataset_loaded_timestamp_seconds 1.7e+09")
	assert.Contains(t, out, "go_goroutines")
}

func TestMetrics_MiddlewareUsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/fields/{field}/counts", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/api/summary", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	for _, path := range []string{"/api/fields/Major/counts", "/api/fields/Gender/counts", "/api/summary"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	out := scrape(t, m)
	assert.Contains(t, out,
		`attendance_insights_http_requests_total{method="GET",route="/api/fields/{field}/counts",status="404"} 2`)
	assert.Contains(t, out,
		`attendance_insights_http_requests_total{method="GET",route="/api/summary",status="200"} 1`)
	assert.Contains(t, out,
		`attendance_insights_http_request_duration_seconds_count{method="GET",route="/api/summary"} 1`)
	assert.NotContains(t, out, "Major")
}

func TestMetrics_MiddlewareUnmatchedRoute(t *testing.T) {
	m := New()

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/whatever", nil))

	assert.Contains(t, scrape(t, m),
		`attendance_insights_http_requests_total{method="GET",route="unmatched",status="418"} 1`)
}
