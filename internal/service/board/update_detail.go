package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// UpdateDetail overwrites name, value and color of a detail addressed by id.
// The detail keeps its position.
func (s *Store) UpdateDetail(ctx context.Context, input UpdateDetailInput) (domain.Detail, error) {
	if err := input.Validate(); err != nil {
		return domain.Detail{}, err
	}
	params := input.params()

	var updated domain.Detail
	err := s.mutate(ctx, func(ctx context.Context) error {
		if err := s.requireDetail(input.TopicID, input.DetailID); err != nil {
			return err
		}

		rctx, cancel := s.remote(ctx)
		defer cancel()

		detail, err := s.details.Update(rctx, input.DetailID, params)
		if err != nil {
			s.fail(ctx, "update detail failed", err,
				slog.Int64("topic_id", input.TopicID),
				slog.Int64("detail_id", input.DetailID),
			)
			return fmt.Errorf("update detail: %w", err)
		}

		s.apply(domain.Change{Kind: domain.ChangeDetailUpdated, TopicID: input.TopicID, DetailID: detail.ID}, func() {
			ti := s.topicIndex(input.TopicID)
			if ti < 0 {
				return
			}
			if di := s.mirror[ti].DetailIndex(detail.ID); di >= 0 {
				s.mirror[ti].Details[di] = detail
			}
		})
		updated = detail
		return nil
	})
	if err != nil {
		return domain.Detail{}, err
	}

	s.log.InfoContext(ctx, "detail updated",
		slog.Int64("topic_id", input.TopicID),
		slog.Int64("detail_id", updated.ID),
	)

	return updated, nil
}

// requireDetail checks the mirror holds detailID under topicID.
func (s *Store) requireDetail(topicID, detailID int64) error {
	topic, err := s.Topic(topicID)
	if err != nil {
		return err
	}
	if topic.DetailIndex(detailID) < 0 {
		return fmt.Errorf("detail %d of topic %d: %w", detailID, topicID, domain.ErrNotFound)
	}
	return nil
}
