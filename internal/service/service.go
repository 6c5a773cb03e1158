package service

import (
	"context"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/internal/service/mailgun"
)

type Services struct {
	Memberships Memberships
	Datapoints  Datapoints
}

type Deps struct {
	Provider MailingListProvider
	// PageLimit is the page size used by access; zero means the provider default.
	PageLimit int
	// MaxConcurrency caps the per-list fan-out; zero means unbounded.
	MaxConcurrency int
}

func NewServices(deps Deps) *Services {
	memberships := newMembershipService(deps.Provider, deps.MaxConcurrency)
	return &Services{
		Memberships: memberships,
		Datapoints:  newDatapointService(deps.Provider, memberships, deps.PageLimit, deps.MaxConcurrency),
	}
}

// MailingListProvider is the provider surface the connector needs.
type MailingListProvider interface {
	FetchAllLists(ctx context.Context, limit int) (*mailgun.MailingListsResponse, error)
	FetchListMembers(ctx context.Context, listAddress string) (*mailgun.ListMembersResponse, error)
	AddMember(ctx context.Context, listAddress, identifier string) error
	DeleteMember(ctx context.Context, listAddress, identifier string) error
}

type Memberships interface {
	// Subscribed returns the lists identifier is subscribed to, in the order of lists.
	Subscribed(ctx context.Context, identifier string, lists []domain.MailingList) ([]domain.MailingList, error)
}

// Datapoints is the seam a harness depends on. Access must run before Erasure;
// Erasure with no context is a successful no-op.
type Datapoints interface {
	Seed(ctx context.Context, input domain.SeedInput) error
	Access(ctx context.Context, identifier string) (*domain.AccessResult, error)
	Erasure(ctx context.Context, identifier string, contextDict *domain.ContextDictionary) error
}
