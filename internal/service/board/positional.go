package board

import (
	"context"
	"fmt"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// UpdateDetailAt overwrites the detail found at index when the call is made.
// The position is resolved to an id before the mutation is queued, so
// mutations already in flight cannot shift the target.
func (s *Store) UpdateDetailAt(ctx context.Context, input UpdateDetailAtInput) (domain.Detail, error) {
	id, err := s.detailIDAt(input.TopicID, input.Index)
	if err != nil {
		return domain.Detail{}, err
	}
	return s.UpdateDetail(ctx, UpdateDetailInput{
		TopicID:      input.TopicID,
		DetailID:     id,
		DetailFields: input.DetailFields,
	})
}

// DeleteDetailAt removes the detail found at index when the call is made.
func (s *Store) DeleteDetailAt(ctx context.Context, input DeleteDetailAtInput) error {
	id, err := s.detailIDAt(input.TopicID, input.Index)
	if err != nil {
		return err
	}
	return s.DeleteDetail(ctx, DeleteDetailInput{TopicID: input.TopicID, DetailID: id})
}

func (s *Store) detailIDAt(topicID int64, index int) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return 0, domain.ErrNotLoaded
	}
	ti := s.topicIndex(topicID)
	if ti < 0 {
		return 0, fmt.Errorf("topic %d: %w", topicID, domain.ErrNotFound)
	}
	details := s.mirror[ti].Details
	if index < 0 || index >= len(details) {
		return 0, domain.NewValidationError("index", fmt.Sprintf("out of range [0, %d)", len(details)))
	}
	return details[index].ID, nil
}
