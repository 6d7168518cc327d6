package board

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// DeleteTopic removes a topic and its details. The remote delete is issued
// even when the mirror does not hold the id; a missing row is reported as
// domain.ErrNotFound and leaves the mirror untouched.
func (s *Store) DeleteTopic(ctx context.Context, input DeleteTopicInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	err := s.mutate(ctx, func(ctx context.Context) error {
		rctx, cancel := s.remote(ctx)
		defer cancel()

		if err := s.topics.Delete(rctx, input.TopicID); err != nil {
			s.fail(ctx, "delete topic failed", err, slog.Int64("topic_id", input.TopicID))
			return fmt.Errorf("delete topic: %w", err)
		}

		s.apply(domain.Change{Kind: domain.ChangeTopicDeleted, TopicID: input.TopicID}, func() {
			if i := s.topicIndex(input.TopicID); i >= 0 {
				s.mirror = slices.Delete(s.mirror, i, i+1)
			}
		})
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "topic deleted", slog.Int64("topic_id", input.TopicID))

	return nil
}
