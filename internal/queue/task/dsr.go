package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
)

const (
	AccessTaskName  = "dsr:access"
	ErasureTaskName = "dsr:erasure"
	SeedTaskName    = "dsr:seed"
	DSRQueueName    = "dsr"

	// ResultRetention keeps completed requests inspectable.
	ResultRetention = 24 * time.Hour
)

// Request is the payload of access and erasure tasks.
type Request struct {
	Identifier string `json:"identifier"`
}

type Seed struct {
	Inputs []domain.SeedInput `json:"inputs"`
}

// TaskName maps an action to its task type.
func TaskName(action domain.Action) (string, error) {
	switch action {
	case domain.ActionAccess:
		return AccessTaskName, nil
	case domain.ActionErasure:
		return ErasureTaskName, nil
	case domain.ActionSeed:
		return SeedTaskName, nil
	}
	return "", fmt.Errorf("%w %q", domain.ErrInvalidAction, action)
}

// NewRequestTask builds an access or erasure task for identifier.
func NewRequestTask(action domain.Action, identifier string, maxRetry int) (*asynq.Task, error) {
	if action != domain.ActionAccess && action != domain.ActionErasure {
		return nil, fmt.Errorf("%w: %q is not a data subject request", domain.ErrInvalidAction, action)
	}
	name, _ := TaskName(action)

	payload, err := json.Marshal(Request{Identifier: identifier})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return newTask(name, payload, maxRetry), nil
}

func NewSeedTask(inputs []domain.SeedInput, maxRetry int) (*asynq.Task, error) {
	payload, err := json.Marshal(Seed{Inputs: inputs})
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return newTask(SeedTaskName, payload, maxRetry), nil
}

func newTask(name string, payload []byte, maxRetry int) *asynq.Task {
	return asynq.NewTask(
		name,
		payload,
		asynq.TaskID(uuid.NewString()),
		asynq.MaxRetry(maxRetry),
		asynq.Queue(DSRQueueName),
		asynq.Retention(ResultRetention),
	)
}
