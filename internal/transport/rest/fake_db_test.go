package rest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/heartmarshall/chartboard/internal/domain"
)

var errRemoteDown = errors.New("remote store down")

// memDB is an in-memory stand-in for the topics and details tables.
type memDB struct {
	mu      sync.Mutex
	nextID  int64
	topics  []domain.Topic
	details []domain.Detail
	down    bool
	writes  int
}

func (db *memDB) setDown(down bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.down = down
}

func (db *memDB) writeCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.writes
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) check() error {
	if db.down {
		return errRemoteDown
	}
	return nil
}

type memTopics struct{ db *memDB }

func (r memTopics) List(context.Context) ([]domain.Topic, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.check(); err != nil {
		return nil, err
	}
	return slices.Clone(r.db.topics), nil
}

func (r memTopics) Create(_ context.Context, name string, kind domain.ChartType) (domain.Topic, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.check(); err != nil {
		return domain.Topic{}, err
	}
	t := domain.Topic{ID: r.db.id(), Name: name, ChartType: kind, CreatedAt: time.Now()}
	r.db.topics = append(r.db.topics, t)
	r.db.writes++
	return t, nil
}

func (r memTopics) Update(_ context.Context, id int64, p domain.TopicUpdateParams) (domain.Topic, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.check(); err != nil {
		return domain.Topic{}, err
	}
	i := slices.IndexFunc(r.db.topics, func(t domain.Topic) bool { return t.ID == id })
	if i < 0 {
		return domain.Topic{}, fmt.Errorf("topic %d: %w", id, domain.ErrNotFound)
	}
	r.db.writes++
	if p.Name != nil {
		r.db.topics[i].Name = *p.Name
	}
	if p.ChartType != nil {
		r.db.topics[i].ChartType = *p.ChartType
	}
	return r.db.topics[i], nil
}

func (r memTopics) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.check(); err != nil {
		return err
	}
	n := len(r.db.topics)
	r.db.topics = slices.DeleteFunc(r.db.topics, func(t domain.Topic) bool { return t.ID == id })
	if len(r.db.topics) == n {
		return fmt.Errorf("topic %d: %w", id, domain.ErrNotFound)
	}
	r.db.details = slices.DeleteFunc(r.db.details, func(d domain.Detail) bool { return d.TopicID == id })
	r.db.writes++
	return nil
}

type memDetails struct{ db *memDB }

func (r memDetails) List(context.Context) ([]domain.Detail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.check(); err != nil {
		return nil, err
	}
	return slices.Clone(r.db.details), nil
}

func (r memDetails) Create(_ context.Context, topicID int64, p domain.DetailParams) (domain.Detail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.check(); err != nil {
		return domain.Detail{}, err
	}
	d := domain.Detail{ID: r.db.id(), TopicID: topicID, Name: p.Name, Value: p.Value, Color: p.Color, CreatedAt: time.Now()}
	r.db.details = append(r.db.details, d)
	r.db.writes++
	return d, nil
}

func (r memDetails) Update(_ context.Context, id int64, p domain.DetailParams) (domain.Detail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.check(); err != nil {
		return domain.Detail{}, err
	}
	i := slices.IndexFunc(r.db.details, func(d domain.Detail) bool { return d.ID == id })
	if i < 0 {
		return domain.Detail{}, fmt.Errorf("detail %d: %w", id, domain.ErrNotFound)
	}
	r.db.writes++
	r.db.details[i].Name, r.db.details[i].Value, r.db.details[i].Color = p.Name, p.Value, p.Color
	return r.db.details[i], nil
}

func (r memDetails) Delete(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.check(); err != nil {
		return err
	}
	n := len(r.db.details)
	r.db.details = slices.DeleteFunc(r.db.details, func(d domain.Detail) bool { return d.ID == id })
	if len(r.db.details) == n {
		return fmt.Errorf("detail %d: %w", id, domain.ErrNotFound)
	}
	r.db.writes++
	return nil
}

type pingerMock struct{ err error }

func (m pingerMock) Ping(context.Context) error { return m.err }
