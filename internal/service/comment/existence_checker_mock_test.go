package comment

import (
	"context"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"sync"
)

var _ existenceChecker = &existenceCheckerMock{}

type existenceCheckerMock struct {
	CheckFunc func(ctx context.Context, taskID string) (domain.Existence, error)

	calls struct {
		Check []struct {
			Ctx    context.Context
			TaskID string
		}
	}
	lockCheck sync.RWMutex
}

func (mock *existenceCheckerMock) Check(ctx context.Context, taskID string) (domain.Existence, error) {
	if mock.CheckFunc == nil {
		panic("existenceCheckerMock.CheckFunc: method is nil but existenceChecker.Check was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TaskID string
	}{
		Ctx:    ctx,
		TaskID: taskID,
	}
	mock.lockCheck.Lock()
	mock.calls.Check = append(mock.calls.Check, callInfo)
	mock.lockCheck.Unlock()
	return mock.CheckFunc(ctx, taskID)
}

func (mock *existenceCheckerMock) CheckCalls() []struct {
	Ctx    context.Context
	TaskID string
} {
	mock.lockCheck.RLock()
	calls := mock.calls.Check
	mock.lockCheck.RUnlock()
	return calls
}
