package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebPages(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"Class Attendance Survey", "4 survey responses across 14 questions"}},
		{"/debug", []string{"4 records", "Current year of study", "/api/fields/"}},
		{"/test", []string{"Endpoint check", `data-path="/api/summary"`, `data-path="/api/insights"`}},
	}

	ts := setupTestServer(t)

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := ts.api.Get(tt.path)
			require.Equal(t, http.StatusOK, resp.Code)

			assert.Equal(t, "text/html; charset=utf-8", resp.Header().Get("Content-Type"))
			assert.Equal(t, CacheNoStore, resp.Header().Get("Cache-Control"))
			for _, s := range tt.want {
				assert.Contains(t, resp.Body.String(), s)
			}
		})
	}
}

func TestWebPages_TemplatesParsed(t *testing.T) {
	for _, name := range []string{"index.html", "debug.html", "test.html"} {
		assert.NotNil(t, pages.Lookup(name), name)
	}
}

func TestWebPages_RenderFailure(t *testing.T) {
	ts := setupTestServer(t)

	w := httptest.NewRecorder()
	ts.server.pageHandler("missing.html")(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL"`)
	assert.NotContains(t, w.Body.String(), "<html")
}
