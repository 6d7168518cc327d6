package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// UpdateTopic changes the name and/or chart type of a topic in the mirror.
// Its details are kept.
func (s *Store) UpdateTopic(ctx context.Context, input UpdateTopicInput) (domain.Topic, error) {
	if err := input.Validate(); err != nil {
		return domain.Topic{}, err
	}

	var updated domain.Topic
	err := s.mutate(ctx, func(ctx context.Context) error {
		if _, err := s.Topic(input.TopicID); err != nil {
			return err
		}

		rctx, cancel := s.remote(ctx)
		defer cancel()

		record, err := s.topics.Update(rctx, input.TopicID, input.params())
		if err != nil {
			s.fail(ctx, "update topic failed", err, slog.Int64("topic_id", input.TopicID))
			return fmt.Errorf("update topic: %w", err)
		}

		s.apply(domain.Change{Kind: domain.ChangeTopicUpdated, TopicID: record.ID}, func() {
			i := s.topicIndex(record.ID)
			if i < 0 {
				return
			}
			s.mirror[i].Name = record.Name
			s.mirror[i].ChartType = record.ChartType
			updated = s.mirror[i].Clone()
		})
		return nil
	})
	if err != nil {
		return domain.Topic{}, err
	}

	s.log.InfoContext(ctx, "topic updated",
		slog.Int64("topic_id", updated.ID),
		slog.String("name", updated.Name),
		slog.String("chart_type", updated.ChartType.String()),
	)

	return updated, nil
}
