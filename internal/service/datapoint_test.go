package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun"
	mock_mailgun "github.com/vibe-gaming/dsr-connector/internal/service/mailgun/mock"
)

func newTestServices(provider MailingListProvider) *Services {
	return NewServices(Deps{Provider: provider, PageLimit: 50})
}

func TestAccessNewsAndPromo(t *testing.T) {
	provider := new(mock_mailgun.Provider)
	provider.On("FetchAllLists", mock.Anything, 50).
		Return(&mailgun.MailingListsResponse{Items: lists("news", "promo")}, nil)
	provider.On("FetchListMembers", mock.Anything, "news").
		Return(members(domain.ListMember{Address: testIdentifier, Subscribed: true}), nil)
	provider.On("FetchListMembers", mock.Anything, "promo").
		Return(members(domain.ListMember{Address: testIdentifier, Subscribed: false}), nil)

	res, err := newTestServices(provider).Datapoints.Access(context.Background(), testIdentifier)
	require.NoError(t, err)

	assert.Equal(t, []string{"news"}, res.Data)
	assert.Equal(t, domain.ContextDictionary{SubscribedMailingLists: []string{"news"}}, res.ContextDict)
	provider.AssertExpectations(t)
}

func TestAccessNoSubscriptions(t *testing.T) {
	provider := new(mock_mailgun.Provider)
	provider.On("FetchAllLists", mock.Anything, 50).
		Return(&mailgun.MailingListsResponse{Items: lists("news")}, nil)
	provider.On("FetchListMembers", mock.Anything, "news").Return(members(), nil)

	res, err := newTestServices(provider).Datapoints.Access(context.Background(), testIdentifier)
	require.NoError(t, err)

	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Empty(t, res.ContextDict.SubscribedMailingLists)
}

func TestAccessPropagatesProviderErrors(t *testing.T) {
	respErr := &mailgun.ResponseError{Reason: "items is not a list", Payload: []byte(`{"items":{}}`)}

	provider := new(mock_mailgun.Provider)
	provider.On("FetchAllLists", mock.Anything, 50).Return(nil, respErr)

	res, err := newTestServices(provider).Datapoints.Access(context.Background(), testIdentifier)
	assert.Nil(t, res)
	assert.Same(t, respErr, err)
	provider.AssertNotCalled(t, "FetchListMembers", mock.Anything, mock.Anything)
}

func TestAccessFailsWhenMembershipCheckFails(t *testing.T) {
	netErr := &mailgun.NetworkError{Detail: "connection reset"}

	provider := new(mock_mailgun.Provider)
	provider.On("FetchAllLists", mock.Anything, 50).
		Return(&mailgun.MailingListsResponse{Items: lists("news", "promo")}, nil)
	provider.On("FetchListMembers", mock.Anything, "news").
		Return(members(domain.ListMember{Address: testIdentifier, Subscribed: true}), nil)
	provider.On("FetchListMembers", mock.Anything, "promo").Return(nil, netErr)

	res, err := newTestServices(provider).Datapoints.Access(context.Background(), testIdentifier)
	assert.Nil(t, res)

	var got *mailgun.NetworkError
	require.ErrorAs(t, err, &got)
}

func TestErasureDeletesFromEveryContextList(t *testing.T) {
	provider := new(mock_mailgun.Provider)
	provider.On("DeleteMember", mock.Anything, "news", testIdentifier).Return(nil).Once()
	provider.On("DeleteMember", mock.Anything, "promo", testIdentifier).Return(nil).Once()

	err := newTestServices(provider).Datapoints.Erasure(context.Background(), testIdentifier,
		&domain.ContextDictionary{SubscribedMailingLists: []string{"news", "promo"}})
	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestErasureWithoutContextIsNoop(t *testing.T) {
	tests := map[string]*domain.ContextDictionary{
		"nil context":   nil,
		"empty context": {SubscribedMailingLists: []string{}},
	}

	for name, contextDict := range tests {
		t.Run(name, func(t *testing.T) {
			provider := new(mock_mailgun.Provider)

			err := newTestServices(provider).Datapoints.Erasure(context.Background(), testIdentifier, contextDict)
			require.NoError(t, err)
			provider.AssertNotCalled(t, "DeleteMember", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestErasureFailsWhenAnyDeleteFails(t *testing.T) {
	provider := new(mock_mailgun.Provider)
	provider.On("DeleteMember", mock.Anything, "news", testIdentifier).Return(nil).Maybe()
	provider.On("DeleteMember", mock.Anything, "promo", testIdentifier).
		Return(&mailgun.HTTPError{StatusCode: 401, StatusText: "Unauthorized"})

	err := newTestServices(provider).Datapoints.Erasure(context.Background(), testIdentifier,
		&domain.ContextDictionary{SubscribedMailingLists: []string{"news", "promo"}})

	var httpErr *mailgun.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.StatusCode)
}

func TestErasureFailureLetsOtherDeletesFinish(t *testing.T) {
	var slowFinished, slowCanceled atomic.Bool

	provider := new(mock_mailgun.Provider)
	provider.On("DeleteMember", mock.Anything, "slow", testIdentifier).
		After(50*time.Millisecond).
		Run(func(args mock.Arguments) {
			slowCanceled.Store(args.Get(0).(context.Context).Err() != nil)
			slowFinished.Store(true)
		}).
		Return(nil)
	provider.On("DeleteMember", mock.Anything, "bad", testIdentifier).
		Return(&mailgun.HTTPError{StatusCode: 401, StatusText: "Unauthorized"})

	err := newTestServices(provider).Datapoints.Erasure(context.Background(), testIdentifier,
		&domain.ContextDictionary{SubscribedMailingLists: []string{"slow", "bad"}})

	var httpErr *mailgun.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.True(t, slowFinished.Load(), "other delete returned before erasure did")
	assert.False(t, slowCanceled.Load(), "other delete saw a canceled context")
	provider.AssertNumberOfCalls(t, "DeleteMember", 2)
}

func TestSeedAddsMember(t *testing.T) {
	provider := new(mock_mailgun.Provider)
	provider.On("AddMember", mock.Anything, "news", testIdentifier).Return(nil).Once()

	err := newTestServices(provider).Datapoints.Seed(context.Background(),
		domain.SeedInput{Identifier: testIdentifier, MailingList: "news"})
	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestSeedPropagatesError(t *testing.T) {
	clientErr := &mailgun.ClientError{Message: "create request", Err: errors.New("bad url")}

	provider := new(mock_mailgun.Provider)
	provider.On("AddMember", mock.Anything, "news", testIdentifier).Return(clientErr)

	err := newTestServices(provider).Datapoints.Seed(context.Background(),
		domain.SeedInput{Identifier: testIdentifier, MailingList: "news"})
	assert.Same(t, clientErr, err)
}
