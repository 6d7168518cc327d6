package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/heartmarshall/chartboard/internal/domain"
	"github.com/heartmarshall/chartboard/internal/service/board"
)

// ErrNoDraft is returned when a draft operation has no matching edit in progress.
var ErrNoDraft = fmt.Errorf("no matching edit in progress: %w", domain.ErrConflict)

type store interface {
	Topic(id int64) (domain.Topic, error)
	UpdateTopic(ctx context.Context, in board.UpdateTopicInput) (domain.Topic, error)
	UpdateDetail(ctx context.Context, in board.UpdateDetailInput) (domain.Detail, error)
}

// DraftKind tells which entity a draft edits.
type DraftKind string

const (
	DraftTopic  DraftKind = "topic"
	DraftDetail DraftKind = "detail"
)

// Draft is the in-progress edit. Only the form matching Kind is set.
type Draft struct {
	Kind     DraftKind   `json:"kind"`
	TopicID  int64       `json:"topic_id"`
	DetailID int64       `json:"detail_id,omitempty"`
	Topic    *TopicForm  `json:"topic,omitempty"`
	Detail   *DetailForm `json:"detail,omitempty"`
}

func (d Draft) clone() Draft {
	if d.Topic != nil {
		t := *d.Topic
		d.Topic = &t
	}
	if d.Detail != nil {
		dt := *d.Detail
		d.Detail = &dt
	}
	return d
}

// Session holds at most one edit draft. Beginning a new edit discards the
// previous draft; a failed commit keeps it for another attempt.
type Session struct {
	log   *slog.Logger
	store store

	mu    sync.Mutex
	draft *Draft
}

// NewSession creates an edit session over the store.
func NewSession(logger *slog.Logger, store store) *Session {
	return &Session{
		log:   logger.With("service", "editor"),
		store: store,
	}
}

// BeginTopicEdit copies the topic into a new draft.
func (s *Session) BeginTopicEdit(topicID int64) (Draft, error) {
	t, err := s.store.Topic(topicID)
	if err != nil {
		return Draft{}, fmt.Errorf("begin topic edit: %w", err)
	}
	form := TopicFormFrom(t)
	return s.begin(Draft{Kind: DraftTopic, TopicID: topicID, Topic: &form}), nil
}

// BeginDetailEdit copies the detail into a new draft.
func (s *Session) BeginDetailEdit(topicID, detailID int64) (Draft, error) {
	t, err := s.store.Topic(topicID)
	if err != nil {
		return Draft{}, fmt.Errorf("begin detail edit: %w", err)
	}
	i := t.DetailIndex(detailID)
	if i < 0 {
		return Draft{}, fmt.Errorf("begin detail edit: detail %d in topic %d: %w", detailID, topicID, domain.ErrNotFound)
	}
	form := DetailFormFrom(t.Details[i])
	return s.begin(Draft{Kind: DraftDetail, TopicID: topicID, DetailID: detailID, Detail: &form}), nil
}

func (s *Session) begin(d Draft) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft != nil {
		s.log.Debug("draft discarded",
			slog.String("kind", string(s.draft.Kind)),
			slog.Int64("topic_id", s.draft.TopicID),
		)
	}
	s.draft = &d
	return d.clone()
}

// Current returns a copy of the draft, if any.
func (s *Session) Current() (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return Draft{}, false
	}
	return s.draft.clone(), true
}

// SetTopicDraft replaces the form of the topic draft. The form is not
// validated until Commit.
func (s *Session) SetTopicDraft(form TopicForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil || s.draft.Kind != DraftTopic {
		return ErrNoDraft
	}
	s.draft.Topic = &form
	return nil
}

// SetDetailDraft replaces the form of the detail draft.
func (s *Session) SetDetailDraft(form DetailForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil || s.draft.Kind != DraftDetail {
		return ErrNoDraft
	}
	s.draft.Detail = &form
	return nil
}

// Commit validates the draft and applies it through the store. The draft
// is cleared only when the store accepted the change.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	if s.draft == nil {
		s.mu.Unlock()
		return ErrNoDraft
	}
	d := s.draft.clone()
	current := s.draft
	s.mu.Unlock()

	if err := s.apply(ctx, d); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			s.log.WarnContext(ctx, "commit failed, draft kept",
				slog.String("kind", string(d.Kind)),
				slog.Int64("topic_id", d.TopicID),
				slog.String("error", err.Error()),
			)
		}
		return err
	}

	s.mu.Lock()
	// A draft begun while the commit was running stays.
	if s.draft == current {
		s.draft = nil
	}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "draft committed",
		slog.String("kind", string(d.Kind)),
		slog.Int64("topic_id", d.TopicID),
		slog.Int64("detail_id", d.DetailID),
	)
	return nil
}

func (s *Session) apply(ctx context.Context, d Draft) error {
	switch d.Kind {
	case DraftTopic:
		in, err := d.Topic.ToUpdateInput(d.TopicID)
		if err != nil {
			return err
		}
		if _, err := s.store.UpdateTopic(ctx, in); err != nil {
			return fmt.Errorf("commit topic %d: %w", d.TopicID, err)
		}
	case DraftDetail:
		fields, err := d.Detail.Fields()
		if err != nil {
			return err
		}
		in := board.UpdateDetailInput{TopicID: d.TopicID, DetailID: d.DetailID, DetailFields: fields}
		if _, err := s.store.UpdateDetail(ctx, in); err != nil {
			return fmt.Errorf("commit detail %d: %w", d.DetailID, err)
		}
	}
	return nil
}

// Cancel discards the draft without touching the store.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}
