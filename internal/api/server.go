// Package api provides the HTTP API server and handlers for the attendance insights dashboard.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/attendance-insights/internal/http/response"
	"github.com/listenupapp/attendance-insights/internal/metrics"
	"github.com/listenupapp/attendance-insights/internal/ratelimit"
	"github.com/listenupapp/attendance-insights/internal/service"
)

// Options holds the optional collaborators of the server.
type Options struct {
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
	// Metrics enables request instrumentation and /metrics when set.
	Metrics *metrics.Metrics
	// Limiter throttles /api routes per client when set.
	Limiter *ratelimit.KeyedRateLimiter
	// RetryAfter is advertised on 429 responses.
	RetryAfter time.Duration
	// Version is reported in the OpenAPI document.
	Version string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	analytics *service.AnalyticsService
	opts      Options
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(analytics *service.AnalyticsService, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		analytics: analytics,
		opts:      opts,
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig(APITitle, opts.Version)
	humaConfig.Info.Description = "Read-only analytics over the class attendance survey."
	// Dashboard clients consume bare JSON; skip the $schema link huma adds to bodies.
	humaConfig.CreateHooks = nil
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, used by tests and tooling that inspect the OpenAPI document.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(accessLog(s.logger))
	s.router.Use(recoverer(s.logger))
	if s.opts.Metrics != nil {
		s.router.Use(s.opts.Metrics.Middleware)
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}))
	if s.opts.Limiter != nil {
		s.router.Use(rateLimitMiddleware(s.opts.Limiter, apiPrefix, s.opts.RetryAfter, s.logger))
	}
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "no route for "+r.URL.Path, s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r.Method+" is not allowed on "+r.URL.Path, s.logger)
	})

	s.registerHealthRoutes()
	s.registerAnalyticsRoutes()
	s.registerFieldRoutes()
	s.registerWebRoutes()

	if s.opts.Metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
	}
}
