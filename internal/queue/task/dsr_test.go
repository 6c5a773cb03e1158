package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
)

func TestNewRequestTask(t *testing.T) {
	tests := map[domain.Action]string{
		domain.ActionAccess:  AccessTaskName,
		domain.ActionErasure: ErasureTaskName,
	}

	for action, name := range tests {
		t.Run(string(action), func(t *testing.T) {
			task, err := NewRequestTask(action, "jane@example.com", 0)
			require.NoError(t, err)
			assert.Equal(t, name, task.Type())

			var payload Request
			require.NoError(t, json.Unmarshal(task.Payload(), &payload))
			assert.Equal(t, "jane@example.com", payload.Identifier)
		})
	}
}

func TestNewRequestTaskRejectsSeed(t *testing.T) {
	_, err := NewRequestTask(domain.ActionSeed, "jane@example.com", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestNewSeedTask(t *testing.T) {
	inputs := []domain.SeedInput{{Identifier: "jane@example.com", MailingList: "news"}}

	task, err := NewSeedTask(inputs, 2)
	require.NoError(t, err)
	assert.Equal(t, SeedTaskName, task.Type())
	assert.JSONEq(t, `{"inputs":[{"identifier":"jane@example.com","mailingList":"news"}]}`, string(task.Payload()))
}

func TestTaskName(t *testing.T) {
	name, err := TaskName(domain.ActionSeed)
	require.NoError(t, err)
	assert.Equal(t, SeedTaskName, name)

	_, err = TaskName("DELETE")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}
