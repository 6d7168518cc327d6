package board

import (
	"sync"

	"github.com/heartmarshall/chartboard/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	PublishFunc func(change domain.Change)

	calls struct {
		Publish []struct {
			Change domain.Change
		}
	}
	lockPublish sync.RWMutex
}

func (mock *notifierMock) Publish(change domain.Change) {
	if mock.PublishFunc == nil {
		panic("notifierMock.PublishFunc: method is nil but notifier.Publish was just called")
	}
	callInfo := struct {
		Change domain.Change
	}{Change: change}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	mock.PublishFunc(change)
}

func (mock *notifierMock) PublishCalls() []struct {
	Change domain.Change
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
