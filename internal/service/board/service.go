// Package board owns the in-memory mirror of the remote topics and details
// tables. Every mutation is written to the remote store first and applied to
// the mirror only after the write is acknowledged.
package board

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/heartmarshall/chartboard/internal/config"
	"github.com/heartmarshall/chartboard/internal/domain"
)

type topicRepo interface {
	List(ctx context.Context) ([]domain.Topic, error)
	Create(ctx context.Context, name string, chartType domain.ChartType) (domain.Topic, error)
	Update(ctx context.Context, id int64, params domain.TopicUpdateParams) (domain.Topic, error)
	Delete(ctx context.Context, id int64) error
}

type detailRepo interface {
	List(ctx context.Context) ([]domain.Detail, error)
	Create(ctx context.Context, topicID int64, params domain.DetailParams) (domain.Detail, error)
	Update(ctx context.Context, id int64, params domain.DetailParams) (domain.Detail, error)
	Delete(ctx context.Context, id int64) error
}

type notifier interface {
	Publish(change domain.Change)
}

// Store is the single owner of the mirror. Reads return deep copies;
// mutations are serialized through a one-slot queue held across the remote
// call and the mirror update, so they apply in the order they entered it.
type Store struct {
	log     *slog.Logger
	topics  topicRepo
	details detailRepo
	notify  notifier
	cfg     config.StoreConfig

	queue   chan struct{}
	pending atomic.Int64

	mu      sync.RWMutex
	mirror  []domain.Topic
	loaded  bool
	version uint64
}

// NewStore creates an empty, unloaded Store. Call Load before mutating.
func NewStore(
	logger *slog.Logger,
	topics topicRepo,
	details detailRepo,
	notify notifier,
	cfg config.StoreConfig,
) *Store {
	return &Store{
		log:     logger.With("service", "board"),
		topics:  topics,
		details: details,
		notify:  notify,
		cfg:     cfg,
		queue:   make(chan struct{}, 1),
		mirror:  []domain.Topic{},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// enqueue waits for the mutation slot. The returned release must be called
// exactly once. Waiting is abandoned when ctx ends.
func (s *Store) enqueue(ctx context.Context) (release func(), err error) {
	s.pending.Add(1)
	select {
	case s.queue <- struct{}{}:
		return func() {
			<-s.queue
			s.pending.Add(-1)
		}, nil
	case <-ctx.Done():
		s.pending.Add(-1)
		return nil, ctx.Err()
	}
}

// mutate runs fn in the mutation slot after checking the mirror is loaded.
func (s *Store) mutate(ctx context.Context, fn func(ctx context.Context) error) error {
	release, err := s.enqueue(ctx)
	if err != nil {
		return err
	}
	defer release()

	if !s.Loaded() {
		return domain.ErrNotLoaded
	}
	return fn(ctx)
}

// remote bounds a single remote call by the configured timeout.
func (s *Store) remote(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.RemoteTimeout)
}

// apply mutates the mirror under the write lock, bumps the version and
// publishes the change. Must be called from inside the mutation slot.
func (s *Store) apply(change domain.Change, fn func()) {
	s.mu.Lock()
	fn()
	s.version++
	change.Version = s.version
	s.mu.Unlock()

	if s.notify != nil {
		s.notify.Publish(change)
	}
}

// topicIndex returns the mirror position of topic id, or -1. Caller holds mu.
func (s *Store) topicIndex(id int64) int {
	for i := range s.mirror {
		if s.mirror[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) fail(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("error", err.Error()))
	s.log.ErrorContext(ctx, msg, attrs...)
}
