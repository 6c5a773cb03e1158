package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/queue/task"
	"github.com/vibe-gaming/dsr-connector/internal/worker"
	"github.com/vibe-gaming/dsr-connector/pkg/validator"

	"github.com/hibiken/asynq"
)

type dsrRequestProcessor struct {
	workers *worker.Workers
	action  domain.Action
}

// NewAccessProcessor handles dsr:access tasks.
func NewAccessProcessor(workers *worker.Workers) *dsrRequestProcessor {
	return &dsrRequestProcessor{workers: workers, action: domain.ActionAccess}
}

// NewErasureProcessor handles dsr:erasure tasks.
func NewErasureProcessor(workers *worker.Workers) *dsrRequestProcessor {
	return &dsrRequestProcessor{workers: workers, action: domain.ActionErasure}
}

func (p *dsrRequestProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.Request
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("process %s task json unmarshal failed: %v: %w", t.Type(), err, asynq.SkipRetry)
	}

	if err := validator.Identifier(data.Identifier); err != nil {
		return fmt.Errorf("process %s task: %w: %w", t.Type(), err, asynq.SkipRetry)
	}

	res, err := p.workers.Integration.RunIntegration(ctx, data.Identifier, p.action)
	if err != nil {
		return fmt.Errorf("run %s integration failed: %w", p.action, err)
	}

	return writeResult(t, res)
}

// writeResult stores v with the task; tasks built outside a server have no writer.
func writeResult(t *asynq.Task, v any) error {
	rw := t.ResultWriter()
	if rw == nil {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json result marshal failed: %w", err)
	}
	if _, err := rw.Write(raw); err != nil {
		return fmt.Errorf("write task result failed: %w", err)
	}

	return nil
}
