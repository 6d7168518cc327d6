package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// AddTopic inserts a topic remotely and appends the stored record, with an
// empty detail list, to the mirror.
func (s *Store) AddTopic(ctx context.Context, input CreateTopicInput) (domain.Topic, error) {
	if err := input.Validate(); err != nil {
		return domain.Topic{}, err
	}
	name := domain.NormalizeName(input.Name)

	var created domain.Topic
	err := s.mutate(ctx, func(ctx context.Context) error {
		rctx, cancel := s.remote(ctx)
		defer cancel()

		topic, err := s.topics.Create(rctx, name, input.ChartType)
		if err != nil {
			s.fail(ctx, "add topic failed", err, slog.String("name", name))
			return fmt.Errorf("add topic: %w", err)
		}
		topic.Details = []domain.Detail{}

		s.apply(domain.Change{Kind: domain.ChangeTopicCreated, TopicID: topic.ID}, func() {
			s.mirror = append(s.mirror, topic)
		})
		created = topic.Clone()
		return nil
	})
	if err != nil {
		return domain.Topic{}, err
	}

	s.log.InfoContext(ctx, "topic created",
		slog.Int64("topic_id", created.ID),
		slog.String("name", created.Name),
		slog.String("chart_type", created.ChartType.String()),
	)

	return created, nil
}
