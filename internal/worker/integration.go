package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/service"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
)

type integrationRunner struct {
	datapoints      service.Datapoints
	seedConcurrency int
}

func newIntegrationRunner(datapoints service.Datapoints, seedConcurrency int) *integrationRunner {
	return &integrationRunner{
		datapoints:      datapoints,
		seedConcurrency: seedConcurrency,
	}
}

// RunIntegration runs access and, for ERASURE, feeds its context into erasure.
// The access result is returned in both cases.
func (r *integrationRunner) RunIntegration(ctx context.Context, identifier string, action domain.Action) (*domain.AccessResult, error) {
	if action != domain.ActionAccess && action != domain.ActionErasure {
		return nil, fmt.Errorf("%w: %q cannot run as an integration", domain.ErrInvalidAction, action)
	}

	logger.Info("Running Access...", zap.String("action", string(action)))
	res, err := r.datapoints.Access(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("access for %s failed: %w", identifier, err)
	}
	logger.Info("Data retrieved", zap.String("identifier", identifier), zap.Strings("data", res.Data))

	if action == domain.ActionAccess {
		return res, nil
	}

	logger.Info("Context dictionary for the erasure",
		zap.Strings("subscribedMailingLists", res.ContextDict.SubscribedMailingLists))
	logger.Info("Running Erasure...")
	if err := r.datapoints.Erasure(ctx, identifier, &res.ContextDict); err != nil {
		return nil, fmt.Errorf("erasure for %s failed: %w", identifier, err)
	}
	logger.Info("All done!")

	return res, nil
}

// SeedIntegration seeds every input concurrently and reports the first failure once all are done.
func (r *integrationRunner) SeedIntegration(ctx context.Context, inputs []domain.SeedInput) error {
	logger.Info("Seeding data...", zap.Int("count", len(inputs)))

	var g errgroup.Group
	if r.seedConcurrency > 0 {
		g.SetLimit(r.seedConcurrency)
	}

	for _, input := range inputs {
		g.Go(func() error {
			if err := r.datapoints.Seed(ctx, input); err != nil {
				return fmt.Errorf("seed %s into %s failed: %w", input.Identifier, input.MailingList, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info(fmt.Sprintf("Successfully seeded %d identifiers.", len(inputs)))
	return nil
}
