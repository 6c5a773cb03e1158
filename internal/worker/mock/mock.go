package mock_worker

import (
	"context"

	"github.com/vibe-gaming/dsr-connector/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Integration struct {
	mock.Mock
}

func (m *Integration) RunIntegration(ctx context.Context, identifier string, action domain.Action) (*domain.AccessResult, error) {
	args := m.Called(ctx, identifier, action)

	res, _ := args.Get(0).(*domain.AccessResult)
	return res, args.Error(1)
}

func (m *Integration) SeedIntegration(ctx context.Context, inputs []domain.SeedInput) error {
	args := m.Called(ctx, inputs)

	return args.Error(0)
}
