package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun"
	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun/mailguntest"
)

func newMailgunServices(t *testing.T) (*Services, *mailguntest.Server) {
	t.Helper()

	srv := mailguntest.NewServer("key-test")
	t.Cleanup(srv.Close)

	client := mailgun.NewClient(mailgun.Config{APIKey: srv.APIKey, BaseURL: srv.BaseURL()})
	return NewServices(Deps{Provider: client, PageLimit: client.PageLimit()}), srv
}

func TestAccessThenErasureAgainstMailgun(t *testing.T) {
	svc, srv := newMailgunServices(t)
	srv.AddList("news", domain.ListMember{Address: testIdentifier, Subscribed: true})
	srv.AddList("promo", domain.ListMember{Address: testIdentifier, Subscribed: false})
	srv.AddList("events",
		domain.ListMember{Address: "other@x.com", Subscribed: true},
		domain.ListMember{Address: testIdentifier, Subscribed: true},
	)

	ctx := context.Background()

	res, err := svc.Datapoints.Access(ctx, testIdentifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"news", "events"}, res.Data)

	require.NoError(t, svc.Datapoints.Erasure(ctx, testIdentifier, &res.ContextDict))

	after, err := svc.Datapoints.Access(ctx, testIdentifier)
	require.NoError(t, err)
	assert.Empty(t, after.Data)

	// untouched: not in the context
	assert.Len(t, srv.Members("promo"), 1)
	assert.Len(t, srv.Members("events"), 1)

	// a second erasure with the same context is still a success
	require.NoError(t, svc.Datapoints.Erasure(ctx, testIdentifier, &res.ContextDict))
}

func TestSeedThenAccessAgainstMailgun(t *testing.T) {
	svc, srv := newMailgunServices(t)
	srv.AddList("news")
	srv.AddList("promo")

	ctx := context.Background()
	input := domain.SeedInput{Identifier: testIdentifier, MailingList: "promo"}

	require.NoError(t, svc.Datapoints.Seed(ctx, input))
	require.NoError(t, svc.Datapoints.Seed(ctx, input))

	res, err := svc.Datapoints.Access(ctx, testIdentifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"promo"}, res.Data)
	assert.Equal(t, []string{"promo"}, res.ContextDict.SubscribedMailingLists)
}

func TestSeedUnknownListIsHTTPError(t *testing.T) {
	svc, _ := newMailgunServices(t)

	err := svc.Datapoints.Seed(context.Background(), domain.SeedInput{Identifier: testIdentifier, MailingList: "missing"})

	var httpErr *mailgun.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)
}
