package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// AddDetail inserts a detail under its topic and appends the stored record,
// carrying the server-assigned id, to the end of the topic's details.
func (s *Store) AddDetail(ctx context.Context, input AddDetailInput) (domain.Detail, error) {
	if err := input.Validate(); err != nil {
		return domain.Detail{}, err
	}
	params := input.params()

	var created domain.Detail
	err := s.mutate(ctx, func(ctx context.Context) error {
		if _, err := s.Topic(input.TopicID); err != nil {
			return err
		}

		rctx, cancel := s.remote(ctx)
		defer cancel()

		detail, err := s.details.Create(rctx, input.TopicID, params)
		if err != nil {
			s.fail(ctx, "add detail failed", err, slog.Int64("topic_id", input.TopicID))
			return fmt.Errorf("add detail: %w", err)
		}

		s.apply(domain.Change{Kind: domain.ChangeDetailCreated, TopicID: input.TopicID, DetailID: detail.ID}, func() {
			if i := s.topicIndex(input.TopicID); i >= 0 {
				s.mirror[i].Details = append(s.mirror[i].Details, detail)
			}
		})
		created = detail
		return nil
	})
	if err != nil {
		return domain.Detail{}, err
	}

	s.log.InfoContext(ctx, "detail created",
		slog.Int64("topic_id", created.TopicID),
		slog.Int64("detail_id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}
