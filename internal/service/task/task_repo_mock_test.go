package task

import (
	"context"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"sync"
	"time"
)

var _ taskRepo = &taskRepoMock{}

type taskRepoMock struct {
	CreateFunc        func(ctx context.Context, t *domain.Task) (*domain.Task, error)
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Task, error)
	ListFunc          func(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error)
	UpdateFunc        func(ctx context.Context, id string, p domain.TaskUpdateParams, now time.Time) (*domain.Task, error)
	TouchFunc         func(ctx context.Context, id string, now time.Time) error
	DeleteFunc        func(ctx context.Context, id string) error
	SetCategoriesFunc func(ctx context.Context, taskID string, categoryIDs []string) error

	calls struct {
		Create []struct {
			Ctx context.Context
			T   *domain.Task
		}
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
		List []struct {
			Ctx context.Context
			F   domain.TaskFilter
		}
		Update []struct {
			Ctx context.Context
			ID  string
			P   domain.TaskUpdateParams
			Now time.Time
		}
		Touch []struct {
			Ctx context.Context
			ID  string
			Now time.Time
		}
		Delete []struct {
			Ctx context.Context
			ID  string
		}
		SetCategories []struct {
			Ctx         context.Context
			TaskID      string
			CategoryIDs []string
		}
	}
	lockCreate        sync.RWMutex
	lockGetByID       sync.RWMutex
	lockList          sync.RWMutex
	lockUpdate        sync.RWMutex
	lockTouch         sync.RWMutex
	lockDelete        sync.RWMutex
	lockSetCategories sync.RWMutex
}

func (mock *taskRepoMock) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	if mock.CreateFunc == nil {
		panic("taskRepoMock.CreateFunc: method is nil but taskRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   *domain.Task
	}{
		Ctx: ctx,
		T:   t,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, t)
}

func (mock *taskRepoMock) CreateCalls() []struct {
	Ctx context.Context
	T   *domain.Task
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *taskRepoMock) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if mock.GetByIDFunc == nil {
		panic("taskRepoMock.GetByIDFunc: method is nil but taskRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *taskRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *taskRepoMock) List(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error) {
	if mock.ListFunc == nil {
		panic("taskRepoMock.ListFunc: method is nil but taskRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.TaskFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *taskRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.TaskFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *taskRepoMock) Update(ctx context.Context, id string, p domain.TaskUpdateParams, now time.Time) (*domain.Task, error) {
	if mock.UpdateFunc == nil {
		panic("taskRepoMock.UpdateFunc: method is nil but taskRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
		P   domain.TaskUpdateParams
		Now time.Time
	}{
		Ctx: ctx,
		ID:  id,
		P:   p,
		Now: now,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, p, now)
}

func (mock *taskRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  string
	P   domain.TaskUpdateParams
	Now time.Time
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *taskRepoMock) Touch(ctx context.Context, id string, now time.Time) error {
	if mock.TouchFunc == nil {
		panic("taskRepoMock.TouchFunc: method is nil but taskRepo.Touch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
		Now time.Time
	}{
		Ctx: ctx,
		ID:  id,
		Now: now,
	}
	mock.lockTouch.Lock()
	mock.calls.Touch = append(mock.calls.Touch, callInfo)
	mock.lockTouch.Unlock()
	return mock.TouchFunc(ctx, id, now)
}

func (mock *taskRepoMock) TouchCalls() []struct {
	Ctx context.Context
	ID  string
	Now time.Time
} {
	mock.lockTouch.RLock()
	calls := mock.calls.Touch
	mock.lockTouch.RUnlock()
	return calls
}

func (mock *taskRepoMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("taskRepoMock.DeleteFunc: method is nil but taskRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *taskRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *taskRepoMock) SetCategories(ctx context.Context, taskID string, categoryIDs []string) error {
	if mock.SetCategoriesFunc == nil {
		panic("taskRepoMock.SetCategoriesFunc: method is nil but taskRepo.SetCategories was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		TaskID      string
		CategoryIDs []string
	}{
		Ctx:         ctx,
		TaskID:      taskID,
		CategoryIDs: categoryIDs,
	}
	mock.lockSetCategories.Lock()
	mock.calls.SetCategories = append(mock.calls.SetCategories, callInfo)
	mock.lockSetCategories.Unlock()
	return mock.SetCategoriesFunc(ctx, taskID, categoryIDs)
}

func (mock *taskRepoMock) SetCategoriesCalls() []struct {
	Ctx         context.Context
	TaskID      string
	CategoryIDs []string
} {
	mock.lockSetCategories.RLock()
	calls := mock.calls.SetCategories
	mock.lockSetCategories.RUnlock()
	return calls
}
