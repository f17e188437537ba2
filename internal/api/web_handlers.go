package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/listenupapp/attendance-insights/internal/http/response"
)

//go:embed templates/*.html
var templates embed.FS

//nolint:gochecknoglobals // Parsed once from the embedded files
var pages = template.Must(template.ParseFS(templates, "templates/*.html"))

// dashboardEndpoints are probed by the endpoint check page.
//
//nolint:gochecknoglobals // Static list
var dashboardEndpoints = []string{
	"/api/data",
	"/api/summary",
	"/api/attendance_by_major",
	"/api/gpa_by_attendance",
	"/api/reasons_analysis",
	"/api/year_wise_analysis",
	"/api/factors_influencing",
	"/api/compensation_methods",
	"/api/attitude",
	"/api/effectiveness",
	"/api/optional_frequency",
	"/api/insights",
	"/api/fields",
}

// pageData contains data shared by the HTML pages.
type pageData struct {
	Title     string
	Records   int
	Fields    []string
	Endpoints []string
}

func (s *Server) registerWebRoutes() {
	s.router.Get("/", s.pageHandler("index.html"))
	s.router.Get("/debug", s.pageHandler("debug.html"))
	s.router.Get("/test", s.pageHandler("test.html"))
}

// pageHandler renders one of the embedded templates.
func (s *Server) pageHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{
			Title:     "Class Attendance Survey",
			Endpoints: dashboardEndpoints,
		}
		if s.analytics != nil {
			data.Records = s.analytics.Dataset().Len()
			data.Fields = s.analytics.Fields(r.Context())
		}

		var buf bytes.Buffer
		if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
			response.HandleError(w, fmt.Errorf("render %s: %w", name, err), s.logger)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", CacheNoStore)
		_, _ = buf.WriteTo(w)
	}
}
