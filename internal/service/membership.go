package service

import (
	"context"

	"github.com/vibe-gaming/dsr-connector/internal/domain"
	"github.com/vibe-gaming/dsr-connector/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type membershipService struct {
	provider       MailingListProvider
	maxConcurrency int
}

func newMembershipService(provider MailingListProvider, maxConcurrency int) *membershipService {
	return &membershipService{
		provider:       provider,
		maxConcurrency: maxConcurrency,
	}
}

// Subscribed checks every list in parallel. Every check runs to completion; any failed
// check fails the whole call.
func (s *membershipService) Subscribed(ctx context.Context, identifier string, lists []domain.MailingList) ([]domain.MailingList, error) {
	// one slot per list, written only by that list's goroutine
	matched := make([]bool, len(lists))

	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	for i, list := range lists {
		g.Go(func() error {
			members, err := s.provider.FetchListMembers(ctx, list.Address)
			if err != nil {
				return err
			}

			for _, member := range members.Items {
				if member.IsSubscriber(identifier) {
					matched[i] = true
					break
				}
			}

			logger.Debug("mailing list checked",
				zap.String("list", list.Address),
				zap.Int("members", len(members.Items)),
				zap.Bool("subscribed", matched[i]),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	subscribed := make([]domain.MailingList, 0, len(lists))
	for i, list := range lists {
		if matched[i] {
			subscribed = append(subscribed, list)
		}
	}

	return subscribed, nil
}
