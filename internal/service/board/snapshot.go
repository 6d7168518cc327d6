package board

import (
	"fmt"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// Topics returns a deep copy of the mirror in insertion order.
func (s *Store) Topics() []domain.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Topic, len(s.mirror))
	for i := range s.mirror {
		out[i] = s.mirror[i].Clone()
	}
	return out
}

// Topic returns a deep copy of one topic.
func (s *Store) Topic(id int64) (domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.topicIndex(id)
	if i < 0 {
		return domain.Topic{}, fmt.Errorf("topic %d: %w", id, domain.ErrNotFound)
	}
	return s.mirror[i].Clone(), nil
}

// Version increases by one with every applied change, including loads.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Loaded reports whether a Load has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Pending is the number of mutations queued or in flight.
func (s *Store) Pending() int {
	return int(s.pending.Load())
}
