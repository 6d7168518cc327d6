package editor

import (
	"context"
	"sync"

	"github.com/heartmarshall/chartboard/internal/domain"
	"github.com/heartmarshall/chartboard/internal/service/board"
)

var _ store = &storeMock{}

type storeMock struct {
	TopicFunc        func(id int64) (domain.Topic, error)
	UpdateTopicFunc  func(ctx context.Context, in board.UpdateTopicInput) (domain.Topic, error)
	UpdateDetailFunc func(ctx context.Context, in board.UpdateDetailInput) (domain.Detail, error)

	calls struct {
		Topic []struct {
			ID int64
		}
		UpdateTopic []struct {
			Ctx context.Context
			In  board.UpdateTopicInput
		}
		UpdateDetail []struct {
			Ctx context.Context
			In  board.UpdateDetailInput
		}
	}
	lockTopic        sync.RWMutex
	lockUpdateTopic  sync.RWMutex
	lockUpdateDetail sync.RWMutex
}

func (mock *storeMock) Topic(id int64) (domain.Topic, error) {
	if mock.TopicFunc == nil {
		panic("storeMock.TopicFunc: method is nil but store.Topic was just called")
	}
	callInfo := struct {
		ID int64
	}{ID: id}
	mock.lockTopic.Lock()
	mock.calls.Topic = append(mock.calls.Topic, callInfo)
	mock.lockTopic.Unlock()
	return mock.TopicFunc(id)
}

func (mock *storeMock) TopicCalls() []struct {
	ID int64
} {
	mock.lockTopic.RLock()
	calls := mock.calls.Topic
	mock.lockTopic.RUnlock()
	return calls
}

func (mock *storeMock) UpdateTopic(ctx context.Context, in board.UpdateTopicInput) (domain.Topic, error) {
	if mock.UpdateTopicFunc == nil {
		panic("storeMock.UpdateTopicFunc: method is nil but store.UpdateTopic was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  board.UpdateTopicInput
	}{Ctx: ctx, In: in}
	mock.lockUpdateTopic.Lock()
	mock.calls.UpdateTopic = append(mock.calls.UpdateTopic, callInfo)
	mock.lockUpdateTopic.Unlock()
	return mock.UpdateTopicFunc(ctx, in)
}

func (mock *storeMock) UpdateTopicCalls() []struct {
	Ctx context.Context
	In  board.UpdateTopicInput
} {
	mock.lockUpdateTopic.RLock()
	calls := mock.calls.UpdateTopic
	mock.lockUpdateTopic.RUnlock()
	return calls
}

func (mock *storeMock) UpdateDetail(ctx context.Context, in board.UpdateDetailInput) (domain.Detail, error) {
	if mock.UpdateDetailFunc == nil {
		panic("storeMock.UpdateDetailFunc: method is nil but store.UpdateDetail was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  board.UpdateDetailInput
	}{Ctx: ctx, In: in}
	mock.lockUpdateDetail.Lock()
	mock.calls.UpdateDetail = append(mock.calls.UpdateDetail, callInfo)
	mock.lockUpdateDetail.Unlock()
	return mock.UpdateDetailFunc(ctx, in)
}

func (mock *storeMock) UpdateDetailCalls() []struct {
	Ctx context.Context
	In  board.UpdateDetailInput
} {
	mock.lockUpdateDetail.RLock()
	calls := mock.calls.UpdateDetail
	mock.lockUpdateDetail.RUnlock()
	return calls
}
