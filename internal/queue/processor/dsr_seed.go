package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vibe-gaming/dsr-connector/internal/queue/task"
	"github.com/vibe-gaming/dsr-connector/internal/worker"
	"github.com/vibe-gaming/dsr-connector/pkg/validator"

	"github.com/hibiken/asynq"
)

type seedProcessor struct {
	workers *worker.Workers
}

func NewSeedProcessor(workers *worker.Workers) *seedProcessor {
	return &seedProcessor{
		workers: workers,
	}
}

func (p *seedProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.Seed
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("process seed task json unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	if len(data.Inputs) == 0 {
		return fmt.Errorf("process seed task: no inputs: %w", asynq.SkipRetry)
	}
	for _, input := range data.Inputs {
		if err := validator.Struct(input); err != nil {
			return fmt.Errorf("process seed task: %w: %w", err, asynq.SkipRetry)
		}
	}

	if err := p.workers.Integration.SeedIntegration(ctx, data.Inputs); err != nil {
		return fmt.Errorf("seed integration failed: %w", err)
	}

	return writeResult(t, map[string]int{"seeded": len(data.Inputs)})
}
