package lifecycle

import (
	"context"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
	"sync"
)

var _ commentClient = &commentClientMock{}

type commentClientMock struct {
	ListByTaskFunc func(ctx context.Context, token string, taskID string) ([]todoapi.Comment, error)
	DeleteFunc     func(ctx context.Context, token string, id int64) error

	calls struct {
		ListByTask []struct {
			Ctx    context.Context
			Token  string
			TaskID string
		}
		Delete []struct {
			Ctx   context.Context
			Token string
			ID    int64
		}
	}
	lockListByTask sync.RWMutex
	lockDelete     sync.RWMutex
}

func (mock *commentClientMock) ListByTask(ctx context.Context, token string, taskID string) ([]todoapi.Comment, error) {
	if mock.ListByTaskFunc == nil {
		panic("commentClientMock.ListByTaskFunc: method is nil but commentClient.ListByTask was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Token  string
		TaskID string
	}{
		Ctx:    ctx,
		Token:  token,
		TaskID: taskID,
	}
	mock.lockListByTask.Lock()
	mock.calls.ListByTask = append(mock.calls.ListByTask, callInfo)
	mock.lockListByTask.Unlock()
	return mock.ListByTaskFunc(ctx, token, taskID)
}

func (mock *commentClientMock) ListByTaskCalls() []struct {
	Ctx    context.Context
	Token  string
	TaskID string
} {
	mock.lockListByTask.RLock()
	calls := mock.calls.ListByTask
	mock.lockListByTask.RUnlock()
	return calls
}

func (mock *commentClientMock) Delete(ctx context.Context, token string, id int64) error {
	if mock.DeleteFunc == nil {
		panic("commentClientMock.DeleteFunc: method is nil but commentClient.Delete was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
		ID    int64
	}{
		Ctx:   ctx,
		Token: token,
		ID:    id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, token, id)
}

func (mock *commentClientMock) DeleteCalls() []struct {
	Ctx   context.Context
	Token string
	ID    int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
