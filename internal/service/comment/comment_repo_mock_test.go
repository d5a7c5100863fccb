package comment

import (
	"context"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"sync"
	"time"
)

var _ commentRepo = &commentRepoMock{}

type commentRepoMock struct {
	CreateFunc     func(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.Comment, error)
	ListFunc       func(ctx context.Context, skip int, limit int) ([]domain.Comment, error)
	ListByTaskFunc func(ctx context.Context, taskID string) ([]domain.Comment, error)
	UpdateFunc     func(ctx context.Context, id int64, content string, taskID string, now time.Time) (*domain.Comment, error)
	DeleteFunc     func(ctx context.Context, id int64) (*domain.Comment, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   *domain.Comment
		}
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		List []struct {
			Ctx   context.Context
			Skip  int
			Limit int
		}
		ListByTask []struct {
			Ctx    context.Context
			TaskID string
		}
		Update []struct {
			Ctx     context.Context
			ID      int64
			Content string
			TaskID  string
			Now     time.Time
		}
		Delete []struct {
			Ctx context.Context
			ID  int64
		}
	}
	lockCreate     sync.RWMutex
	lockGetByID    sync.RWMutex
	lockList       sync.RWMutex
	lockListByTask sync.RWMutex
	lockUpdate     sync.RWMutex
	lockDelete     sync.RWMutex
}

func (mock *commentRepoMock) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	if mock.CreateFunc == nil {
		panic("commentRepoMock.CreateFunc: method is nil but commentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Comment
	}{
		Ctx: ctx,
		C:   c,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *commentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.Comment
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *commentRepoMock) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if mock.GetByIDFunc == nil {
		panic("commentRepoMock.GetByIDFunc: method is nil but commentRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *commentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *commentRepoMock) List(ctx context.Context, skip int, limit int) ([]domain.Comment, error) {
	if mock.ListFunc == nil {
		panic("commentRepoMock.ListFunc: method is nil but commentRepo.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Skip  int
		Limit int
	}{
		Ctx:   ctx,
		Skip:  skip,
		Limit: limit,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, skip, limit)
}

func (mock *commentRepoMock) ListCalls() []struct {
	Ctx   context.Context
	Skip  int
	Limit int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *commentRepoMock) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	if mock.ListByTaskFunc == nil {
		panic("commentRepoMock.ListByTaskFunc: method is nil but commentRepo.ListByTask was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TaskID string
	}{
		Ctx:    ctx,
		TaskID: taskID,
	}
	mock.lockListByTask.Lock()
	mock.calls.ListByTask = append(mock.calls.ListByTask, callInfo)
	mock.lockListByTask.Unlock()
	return mock.ListByTaskFunc(ctx, taskID)
}

func (mock *commentRepoMock) ListByTaskCalls() []struct {
	Ctx    context.Context
	TaskID string
} {
	mock.lockListByTask.RLock()
	calls := mock.calls.ListByTask
	mock.lockListByTask.RUnlock()
	return calls
}

func (mock *commentRepoMock) Update(ctx context.Context, id int64, content string, taskID string, now time.Time) (*domain.Comment, error) {
	if mock.UpdateFunc == nil {
		panic("commentRepoMock.UpdateFunc: method is nil but commentRepo.Update was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      int64
		Content string
		TaskID  string
		Now     time.Time
	}{
		Ctx:     ctx,
		ID:      id,
		Content: content,
		TaskID:  taskID,
		Now:     now,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, content, taskID, now)
}

func (mock *commentRepoMock) UpdateCalls() []struct {
	Ctx     context.Context
	ID      int64
	Content string
	TaskID  string
	Now     time.Time
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *commentRepoMock) Delete(ctx context.Context, id int64) (*domain.Comment, error) {
	if mock.DeleteFunc == nil {
		panic("commentRepoMock.DeleteFunc: method is nil but commentRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *commentRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
