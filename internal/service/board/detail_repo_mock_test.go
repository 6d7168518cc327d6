package board

import (
	"context"
	"sync"

	"github.com/heartmarshall/chartboard/internal/domain"
)

var _ detailRepo = &detailRepoMock{}

type detailRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Detail, error)
	CreateFunc func(ctx context.Context, topicID int64, params domain.DetailParams) (domain.Detail, error)
	UpdateFunc func(ctx context.Context, id int64, params domain.DetailParams) (domain.Detail, error)
	DeleteFunc func(ctx context.Context, id int64) error

	calls struct {
		List []struct {
			Ctx context.Context
		}
		Create []struct {
			Ctx     context.Context
			TopicID int64
			Params  domain.DetailParams
		}
		Update []struct {
			Ctx    context.Context
			ID     int64
			Params domain.DetailParams
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

func (mock *detailRepoMock) List(ctx context.Context) ([]domain.Detail, error) {
	if mock.ListFunc == nil {
		panic("detailRepoMock.ListFunc: method is nil but detailRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *detailRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *detailRepoMock) Create(ctx context.Context, topicID int64, params domain.DetailParams) (domain.Detail, error) {
	if mock.CreateFunc == nil {
		panic("detailRepoMock.CreateFunc: method is nil but detailRepo.Create was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TopicID int64
		Params  domain.DetailParams
	}{Ctx: ctx, TopicID: topicID, Params: params}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, topicID, params)
}

func (mock *detailRepoMock) CreateCalls() []struct {
	Ctx     context.Context
	TopicID int64
	Params  domain.DetailParams
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *detailRepoMock) Update(ctx context.Context, id int64, params domain.DetailParams) (domain.Detail, error) {
	if mock.UpdateFunc == nil {
		panic("detailRepoMock.UpdateFunc: method is nil but detailRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     int64
		Params domain.DetailParams
	}{Ctx: ctx, ID: id, Params: params}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, params)
}

func (mock *detailRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	ID     int64
	Params domain.DetailParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *detailRepoMock) Delete(ctx context.Context, id int64) error {
	if mock.DeleteFunc == nil {
		panic("detailRepoMock.DeleteFunc: method is nil but detailRepo.Delete was just called")
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

func (mock *detailRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
