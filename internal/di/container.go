// Package di provides dependency injection configuration for the insights server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/attendance-insights/internal/config"
	"github.com/listenupapp/attendance-insights/internal/dataset"
	"github.com/listenupapp/attendance-insights/internal/di/providers"
	"github.com/listenupapp/attendance-insights/internal/logger"
	"github.com/listenupapp/attendance-insights/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Data
	do.Provide(injector, providers.ProvideDataset)
	do.Provide(injector, providers.ProvideAnalyticsService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. The dataset is loaded before the
// server starts listening.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.MetricsHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*dataset.Dataset](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.AnalyticsService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.RateLimiterHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
