package mock_mailgun

import (
	"context"

	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun"

	"github.com/stretchr/testify/mock"
)

type Provider struct {
	mock.Mock
}

func (m *Provider) FetchAllLists(ctx context.Context, limit int) (*mailgun.MailingListsResponse, error) {
	args := m.Called(ctx, limit)

	res, _ := args.Get(0).(*mailgun.MailingListsResponse)
	return res, args.Error(1)
}

func (m *Provider) FetchListMembers(ctx context.Context, listAddress string) (*mailgun.ListMembersResponse, error) {
	args := m.Called(ctx, listAddress)

	res, _ := args.Get(0).(*mailgun.ListMembersResponse)
	return res, args.Error(1)
}

func (m *Provider) AddMember(ctx context.Context, listAddress, identifier string) error {
	args := m.Called(ctx, listAddress, identifier)

	return args.Error(0)
}

func (m *Provider) DeleteMember(ctx context.Context, listAddress, identifier string) error {
	args := m.Called(ctx, listAddress, identifier)

	return args.Error(0)
}
