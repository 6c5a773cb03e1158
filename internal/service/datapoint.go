package service

import (
	"context"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type datapointService struct {
	provider       MailingListProvider
	memberships    Memberships
	pageLimit      int
	maxConcurrency int
}

func newDatapointService(provider MailingListProvider, memberships Memberships, pageLimit, maxConcurrency int) *datapointService {
	return &datapointService{
		provider:       provider,
		memberships:    memberships,
		pageLimit:      pageLimit,
		maxConcurrency: maxConcurrency,
	}
}

func (s *datapointService) Seed(ctx context.Context, input domain.SeedInput) error {
	return s.provider.AddMember(ctx, input.MailingList, input.Identifier)
}

// Access reads only the first page of lists.
func (s *datapointService) Access(ctx context.Context, identifier string) (*domain.AccessResult, error) {
	lists, err := s.provider.FetchAllLists(ctx, s.pageLimit)
	if err != nil {
		return nil, err
	}

	logger.Debug("mailing lists fetched", zap.Int("count", len(lists.Items)), zap.String("next_page", lists.Paging.Next))

	subscribed, err := s.memberships.Subscribed(ctx, identifier, lists.Items)
	if err != nil {
		return nil, err
	}

	return domain.NewAccessResult(domain.ListAddresses(subscribed)), nil
}

// Erasure deletes identifier from every list in contextDict in parallel.
// A nil or empty context issues no requests. A failed delete does not stop the others.
func (s *datapointService) Erasure(ctx context.Context, identifier string, contextDict *domain.ContextDictionary) error {
	lists := contextDict.Lists()
	if len(lists) == 0 {
		logger.Debug("erasure skipped, no subscribed mailing lists in context")
		return nil
	}

	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	for _, list := range lists {
		g.Go(func() error {
			return s.provider.DeleteMember(ctx, list, identifier)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Debug("member removed from mailing lists", zap.Int("count", len(lists)))
	return nil
}
