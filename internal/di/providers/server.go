package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/attendance-insights/internal/api"
	"github.com/listenupapp/attendance-insights/internal/config"
	"github.com/listenupapp/attendance-insights/internal/logger"
	"github.com/listenupapp/attendance-insights/internal/ratelimit"
	"github.com/listenupapp/attendance-insights/internal/service"
)

// RateLimiterHandle wraps the per-client limiter. Limiter is nil when disabled.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter == nil {
		return nil
	}
	return h.Limiter.Shutdown()
}

// ProvideRateLimiter provides the keyed rate limiter for /api routes.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled() {
		log.Info("Rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	burst := cfg.RateLimit.Burst
	if burst < 1 {
		burst = 1
	}

	log.Info("Rate limiting enabled",
		"requests_per_second", cfg.RateLimit.RequestsPerSecond,
		"burst", burst,
	)

	return &RateLimiterHandle{Limiter: ratelimit.New(cfg.RateLimit.RequestsPerSecond, burst)}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server. The listener is bound before
// returning so address errors fail bootstrap.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	analytics := do.MustInvoke[*service.AnalyticsService](i)
	metricsHandle := do.MustInvoke[*MetricsHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)

	handler := api.NewServer(analytics, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        metricsHandle.Metrics,
		Limiter:        limiterHandle.Limiter,
		RetryAfter:     retryAfter(cfg.RateLimit.RequestsPerSecond),
	}, log.WithComponent("http").Logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error")
		}
	}()

	log.Info("Server running", "addr", ln.Addr().String())

	return &HTTPServerHandle{Server: srv}, nil
}

// retryAfter is the time for one token to refill at rps.
func retryAfter(rps float64) time.Duration {
	if rps <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / rps)
}
