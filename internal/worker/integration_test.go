package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/service"
	mock_service "github.com/vibe-gaming/dsr-connector/internal/service/mock"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
)

const identifier = "jane.doe@example.com"

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	t.Cleanup(logger.SetLogger(zap.New(core)))
	return logs
}

func messages(logs *observer.ObservedLogs) []string {
	out := make([]string, 0, logs.Len())
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}

func TestRunIntegrationAccess(t *testing.T) {
	logs := observeLogs(t)
	datapoints := new(mock_service.Datapoints)
	datapoints.On("Access", mock.Anything, identifier).Return(domain.NewAccessResult([]string{"news"}), nil)

	workers := NewWorkers(Deps{Services: &service.Services{Datapoints: datapoints}})
	res, err := workers.Integration.RunIntegration(context.Background(), identifier, domain.ActionAccess)
	require.NoError(t, err)

	assert.Equal(t, []string{"news"}, res.Data)
	datapoints.AssertNotCalled(t, "Erasure", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{"Running Access...", "Data retrieved"}, messages(logs))
}

func TestRunIntegrationErasureUsesAccessContext(t *testing.T) {
	logs := observeLogs(t)
	access := domain.NewAccessResult([]string{"news", "events"})

	datapoints := new(mock_service.Datapoints)
	datapoints.On("Access", mock.Anything, identifier).Return(access, nil)
	datapoints.On("Erasure", mock.Anything, identifier, &access.ContextDict).Return(nil)

	res, err := newIntegrationRunner(datapoints, 0).RunIntegration(context.Background(), identifier, domain.ActionErasure)
	require.NoError(t, err)

	assert.Same(t, access, res)
	datapoints.AssertExpectations(t)
	assert.Equal(t, []string{
		"Running Access...",
		"Data retrieved",
		"Context dictionary for the erasure",
		"Running Erasure...",
		"All done!",
	}, messages(logs))
}

func TestRunIntegrationAccessFailureSkipsErasure(t *testing.T) {
	observeLogs(t)
	cause := errors.New("boom")

	datapoints := new(mock_service.Datapoints)
	datapoints.On("Access", mock.Anything, identifier).Return(nil, cause)

	res, err := newIntegrationRunner(datapoints, 0).RunIntegration(context.Background(), identifier, domain.ActionErasure)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, cause)
	datapoints.AssertNotCalled(t, "Erasure", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunIntegrationErasureFailure(t *testing.T) {
	observeLogs(t)
	cause := errors.New("boom")

	datapoints := new(mock_service.Datapoints)
	datapoints.On("Access", mock.Anything, identifier).Return(domain.NewAccessResult([]string{"news"}), nil)
	datapoints.On("Erasure", mock.Anything, identifier, mock.Anything).Return(cause)

	res, err := newIntegrationRunner(datapoints, 0).RunIntegration(context.Background(), identifier, domain.ActionErasure)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, res)
}

func TestRunIntegrationRejectsSeed(t *testing.T) {
	datapoints := new(mock_service.Datapoints)

	_, err := newIntegrationRunner(datapoints, 0).RunIntegration(context.Background(), identifier, domain.ActionSeed)
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
	datapoints.AssertNotCalled(t, "Access", mock.Anything, mock.Anything)
}

func TestSeedIntegration(t *testing.T) {
	logs := observeLogs(t)
	inputs := []domain.SeedInput{
		{Identifier: identifier, MailingList: "news"},
		{Identifier: "john@example.com", MailingList: "promo"},
	}

	datapoints := new(mock_service.Datapoints)
	for _, in := range inputs {
		datapoints.On("Seed", mock.Anything, in).Return(nil).Once()
	}

	require.NoError(t, newIntegrationRunner(datapoints, 1).SeedIntegration(context.Background(), inputs))
	datapoints.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("Successfully seeded 2 identifiers.").Len())
}

func TestSeedIntegrationFailure(t *testing.T) {
	logs := observeLogs(t)
	cause := errors.New("list not found")
	var calls atomic.Int32

	datapoints := new(mock_service.Datapoints)
	datapoints.On("Seed", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return(cause)

	err := newIntegrationRunner(datapoints, 1).SeedIntegration(context.Background(), []domain.SeedInput{
		{Identifier: identifier, MailingList: "missing"},
	})
	assert.ErrorIs(t, err, cause)
	assert.EqualValues(t, 1, calls.Load())
	assert.Zero(t, logs.FilterMessage("Successfully seeded 1 identifiers.").Len())
}

func TestSeedIntegrationFailureLetsOtherSeedsFinish(t *testing.T) {
	observeLogs(t)
	slow := domain.SeedInput{Identifier: identifier, MailingList: "slow"}
	bad := domain.SeedInput{Identifier: identifier, MailingList: "missing"}
	var slowCanceled atomic.Bool

	datapoints := new(mock_service.Datapoints)
	datapoints.On("Seed", mock.Anything, slow).
		After(50*time.Millisecond).
		Run(func(args mock.Arguments) {
			slowCanceled.Store(args.Get(0).(context.Context).Err() != nil)
		}).
		Return(nil)
	datapoints.On("Seed", mock.Anything, bad).Return(errors.New("list not found"))

	err := newIntegrationRunner(datapoints, 0).SeedIntegration(context.Background(), []domain.SeedInput{slow, bad})
	assert.ErrorContains(t, err, "list not found")
	assert.False(t, slowCanceled.Load())
	datapoints.AssertNumberOfCalls(t, "Seed", 2)
}
