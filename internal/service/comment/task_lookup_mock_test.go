package comment

import (
	"context"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"sync"
)

var _ taskLookup = &taskLookupMock{}

type taskLookupMock struct {
	TaskExistsFunc func(ctx context.Context, token string, taskID string) (domain.Existence, error)

	calls struct {
		TaskExists []struct {
			Ctx    context.Context
			Token  string
			TaskID string
		}
	}
	lockTaskExists sync.RWMutex
}

func (mock *taskLookupMock) TaskExists(ctx context.Context, token string, taskID string) (domain.Existence, error) {
	if mock.TaskExistsFunc == nil {
		panic("taskLookupMock.TaskExistsFunc: method is nil but taskLookup.TaskExists was just called")
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
	mock.lockTaskExists.Lock()
	mock.calls.TaskExists = append(mock.calls.TaskExists, callInfo)
	mock.lockTaskExists.Unlock()
	return mock.TaskExistsFunc(ctx, token, taskID)
}

func (mock *taskLookupMock) TaskExistsCalls() []struct {
	Ctx    context.Context
	Token  string
	TaskID string
} {
	mock.lockTaskExists.RLock()
	calls := mock.calls.TaskExists
	mock.lockTaskExists.RUnlock()
	return calls
}
