package providers

import (
	"fmt"
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/attendance-insights/internal/config"
	"github.com/listenupapp/attendance-insights/internal/dataset"
	"github.com/listenupapp/attendance-insights/internal/logger"
	"github.com/listenupapp/attendance-insights/internal/metrics"
	"github.com/listenupapp/attendance-insights/internal/service"
	"github.com/listenupapp/attendance-insights/internal/survey"
)

// MetricsHandle wraps the collectors. Metrics is nil when disabled.
type MetricsHandle struct {
	Metrics *metrics.Metrics
}

// ProvideMetrics provides the Prometheus collectors.
func ProvideMetrics(i do.Injector) (*MetricsHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Metrics.Enabled {
		log.Info("Metrics disabled by configuration")
		return &MetricsHandle{}, nil
	}

	return &MetricsHandle{Metrics: metrics.New()}, nil
}

// ProvideDataset loads the survey CSV once at startup.
func ProvideDataset(i do.Injector) (*dataset.Dataset, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	metricsHandle := do.MustInvoke[*MetricsHandle](i)

	ds, err := dataset.Load(cfg.Dataset.Path, survey.RequiredFields())
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	log.Info(fmt.Sprintf("Loaded %d student records", ds.Len()),
		"path", cfg.Dataset.Path,
		"columns", len(ds.Columns()),
	)

	if metricsHandle.Metrics != nil {
		metricsHandle.Metrics.ObserveDataset(ds.Len(), len(ds.Columns()), time.Now())
	}

	return ds, nil
}

// ProvideAnalyticsService provides the analytics service over the loaded dataset.
func ProvideAnalyticsService(i do.Injector) (*service.AnalyticsService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	ds := do.MustInvoke[*dataset.Dataset](i)

	return service.NewAnalyticsService(ds, cfg.Dataset.TopN, log.WithComponent("analytics").Logger), nil
}
