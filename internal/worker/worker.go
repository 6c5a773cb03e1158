package worker

import (
	"context"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/service"
)

type Workers struct {
	Integration Integration
}

type Deps struct {
	Services *service.Services
	// SeedConcurrency caps parallel seeds in one batch; zero means unbounded.
	SeedConcurrency int
}

// Integration drives a full data subject request against the datapoints.
type Integration interface {
	RunIntegration(ctx context.Context, identifier string, action domain.Action) (*domain.AccessResult, error)
	SeedIntegration(ctx context.Context, inputs []domain.SeedInput) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		Integration: newIntegrationRunner(deps.Services.Datapoints, deps.SeedConcurrency),
	}
}
