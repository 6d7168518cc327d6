package board

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// Load fetches both remote tables concurrently and replaces the mirror with
// their join. Details whose topic no longer exists are dropped. On failure
// the previous mirror (empty before the first load) is kept.
func (s *Store) Load(ctx context.Context) error {
	release, err := s.enqueue(ctx)
	if err != nil {
		return err
	}
	defer release()

	rctx, cancel := s.remote(ctx)
	defer cancel()

	var (
		topics  []domain.Topic
		details []domain.Detail
	)

	g, gctx := errgroup.WithContext(rctx)
	g.Go(func() error {
		var err error
		topics, err = s.topics.List(gctx)
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		details, err = s.details.List(gctx)
		if err != nil {
			return fmt.Errorf("list details: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.fail(ctx, "mirror load failed", err)
		return fmt.Errorf("load mirror: %w", err)
	}

	mirror, orphans := join(topics, details)
	if orphans > 0 {
		s.log.WarnContext(ctx, "dropped details without a topic", slog.Int("count", orphans))
	}

	s.apply(domain.Change{Kind: domain.ChangeLoaded}, func() {
		s.mirror = mirror
		s.loaded = true
	})

	s.log.InfoContext(ctx, "mirror loaded",
		slog.Int("topics", len(topics)),
		slog.Int("details", len(details)-orphans),
	)

	return nil
}

// join attaches details to their topics, keeping the order of both inputs.
func join(topics []domain.Topic, details []domain.Detail) ([]domain.Topic, int) {
	mirror := make([]domain.Topic, len(topics))
	byID := make(map[int64]int, len(topics))
	for i, t := range topics {
		t.Details = []domain.Detail{}
		mirror[i] = t
		byID[t.ID] = i
	}

	orphans := 0
	for _, d := range details {
		i, ok := byID[d.TopicID]
		if !ok {
			orphans++
			continue
		}
		mirror[i].Details = append(mirror[i].Details, d)
	}
	return mirror, orphans
}
