package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{tagHealth},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	dataset := s.checkDataset()

	return &HealthOutput{
		Body: HealthResponse{
			Status:     dataset.Status,
			Components: map[string]ComponentHealth{"dataset": dataset},
		},
	}, nil
}

// checkDataset reports the shape of the loaded survey.
func (s *Server) checkDataset() ComponentHealth {
	if s.analytics == nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Message: "dataset not loaded",
		}
	}

	ds := s.analytics.Dataset()
	msg := fmt.Sprintf("%d records, %d columns", ds.Len(), len(ds.Columns()))
	if ds.Len() == 0 {
		return ComponentHealth{Status: "degraded", Message: msg}
	}
	return ComponentHealth{Status: "healthy", Message: msg}
}
