package board

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// DeleteDetail removes a detail addressed by id. The remaining details keep
// their relative order.
func (s *Store) DeleteDetail(ctx context.Context, input DeleteDetailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	err := s.mutate(ctx, func(ctx context.Context) error {
		if err := s.requireDetail(input.TopicID, input.DetailID); err != nil {
			return err
		}

		rctx, cancel := s.remote(ctx)
		defer cancel()

		if err := s.details.Delete(rctx, input.DetailID); err != nil {
			s.fail(ctx, "delete detail failed", err,
				slog.Int64("topic_id", input.TopicID),
				slog.Int64("detail_id", input.DetailID),
			)
			return fmt.Errorf("delete detail: %w", err)
		}

		s.apply(domain.Change{Kind: domain.ChangeDetailDeleted, TopicID: input.TopicID, DetailID: input.DetailID}, func() {
			ti := s.topicIndex(input.TopicID)
			if ti < 0 {
				return
			}
			if di := s.mirror[ti].DetailIndex(input.DetailID); di >= 0 {
				s.mirror[ti].Details = slices.Delete(s.mirror[ti].Details, di, di+1)
			}
		})
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "detail deleted",
		slog.Int64("topic_id", input.TopicID),
		slog.Int64("detail_id", input.DetailID),
	)

	return nil
}
