package board

import (
	"context"
	"sync"

	"github.com/heartmarshall/chartboard/internal/domain"
)

var _ topicRepo = &topicRepoMock{}

type topicRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Topic, error)
	CreateFunc func(ctx context.Context, name string, chartType domain.ChartType) (domain.Topic, error)
	UpdateFunc func(ctx context.Context, id int64, params domain.TopicUpdateParams) (domain.Topic, error)
	DeleteFunc func(ctx context.Context, id int64) error

	calls struct {
		List []struct {
			Ctx context.Context
		}
		Create []struct {
			Ctx       context.Context
			Name      string
			ChartType domain.ChartType
		}
		Update []struct {
			Ctx    context.Context
			ID     int64
			Params domain.TopicUpdateParams
		}
		Delete []struct {
			Ctx context.Context
			ID  int64
		}
	}
	lockList   sync.RWMutex
	lockCreate sync.RWMutex
	lockUpdate sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *topicRepoMock) List(ctx context.Context) ([]domain.Topic, error) {
	if mock.ListFunc == nil {
		panic("topicRepoMock.ListFunc: method is nil but topicRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *topicRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *topicRepoMock) Create(ctx context.Context, name string, chartType domain.ChartType) (domain.Topic, error) {
	if mock.CreateFunc == nil {
		panic("topicRepoMock.CreateFunc: method is nil but topicRepo.Create was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Name      string
		ChartType domain.ChartType
	}{Ctx: ctx, Name: name, ChartType: chartType}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, name, chartType)
}

func (mock *topicRepoMock) CreateCalls() []struct {
	Ctx       context.Context
	Name      string
	ChartType domain.ChartType
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *topicRepoMock) Update(ctx context.Context, id int64, params domain.TopicUpdateParams) (domain.Topic, error) {
	if mock.UpdateFunc == nil {
		panic("topicRepoMock.UpdateFunc: method is nil but topicRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     int64
		Params domain.TopicUpdateParams
	}{Ctx: ctx, ID: id, Params: params}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *topicRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     int64
	Params domain.TopicUpdateParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *topicRepoMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("topicRepoMock.DeleteFunc: method is nil but topicRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *topicRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
