package mock_service

import (
	"context"

	"github.com/vibe-gaming/dsr-connector/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Datapoints struct {
	mock.Mock
}

func (m *Datapoints) Seed(ctx context.Context, input domain.SeedInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *Datapoints) Access(ctx context.Context, identifier string) (*domain.AccessResult, error) {
	args := m.Called(ctx, identifier)

	res, _ := args.Get(0).(*domain.AccessResult)
	return res, args.Error(1)
}

func (m *Datapoints) Erasure(ctx context.Context, identifier string, contextDict *domain.ContextDictionary) error {
	args := m.Called(ctx, identifier, contextDict)

	return args.Error(0)
}
