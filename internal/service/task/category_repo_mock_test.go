package task

import (
	"context"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"sync"
)

var _ categoryRepo = &categoryRepoMock{}

type categoryRepoMock struct {
	CreateFunc        func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetOrCreateFunc   func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Category, error)
	ListFunc          func(ctx context.Context) ([]domain.Category, error)
	RenameFunc        func(ctx context.Context, id string, name string) (*domain.Category, error)
	DeleteFunc        func(ctx context.Context, id string) error
	ListByTaskIDsFunc func(ctx context.Context, taskIDs []string) (map[string][]domain.Category, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   *domain.Category
		}
		GetOrCreate []struct {
			Ctx context.Context
			C   *domain.Category
		}
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
		List []struct {
			Ctx context.Context
		}
		Rename []struct {
			Ctx  context.Context
			ID   string
			Name string
		}
		Delete []struct {
			Ctx context.Context
			ID  string
		}
		ListByTaskIDs []struct {
			Ctx     context.Context
			TaskIDs []string
		}
	}
	lockCreate        sync.RWMutex
	lockGetOrCreate   sync.RWMutex
	lockGetByID       sync.RWMutex
	lockList          sync.RWMutex
	lockRename        sync.RWMutex
	lockDelete        sync.RWMutex
	lockListByTaskIDs sync.RWMutex
}

func (mock *categoryRepoMock) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if mock.CreateFunc == nil {
		panic("categoryRepoMock.CreateFunc: method is nil but categoryRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Category
	}{
		Ctx: ctx,
		C:   c,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *categoryRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.Category
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *categoryRepoMock) GetOrCreate(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	if mock.GetOrCreateFunc == nil {
		panic("categoryRepoMock.GetOrCreateFunc: method is nil but categoryRepo.GetOrCreate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Category
	}{
		Ctx: ctx,
		C:   c,
	}
	mock.lockGetOrCreate.Lock()
	mock.calls.GetOrCreate = append(mock.calls.GetOrCreate, callInfo)
	mock.lockGetOrCreate.Unlock()
	return mock.GetOrCreateFunc(ctx, c)
}

func (mock *categoryRepoMock) GetOrCreateCalls() []struct {
	Ctx context.Context
	C   *domain.Category
} {
	mock.lockGetOrCreate.RLock()
	calls := mock.calls.GetOrCreate
	mock.lockGetOrCreate.RUnlock()
	return calls
}

func (mock *categoryRepoMock) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if mock.GetByIDFunc == nil {
		panic("categoryRepoMock.GetByIDFunc: method is nil but categoryRepo.GetByID was just called")
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

func (mock *categoryRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *categoryRepoMock) List(ctx context.Context) ([]domain.Category, error) {
	if mock.ListFunc == nil {
		panic("categoryRepoMock.ListFunc: method is nil but categoryRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *categoryRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *categoryRepoMock) Rename(ctx context.Context, id string, name string) (*domain.Category, error) {
	if mock.RenameFunc == nil {
		panic("categoryRepoMock.RenameFunc: method is nil but categoryRepo.Rename was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		ID   string
		Name string
	}{
		Ctx:  ctx,
		ID:   id,
		Name: name,
	}
	mock.lockRename.Lock()
	mock.calls.Rename = append(mock.calls.Rename, callInfo)
	mock.lockRename.Unlock()
	return mock.RenameFunc(ctx, id, name)
}

func (mock *categoryRepoMock) RenameCalls() []struct {
	Ctx  context.Context
	ID   string
	Name string
} {
	mock.lockRename.RLock()
	calls := mock.calls.Rename
	mock.lockRename.RUnlock()
	return calls
}

func (mock *categoryRepoMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("categoryRepoMock.DeleteFunc: method is nil but categoryRepo.Delete was just called")
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

func (mock *categoryRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *categoryRepoMock) ListByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]domain.Category, error) {
	if mock.ListByTaskIDsFunc == nil {
		panic("categoryRepoMock.ListByTaskIDsFunc: method is nil but categoryRepo.ListByTaskIDs was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TaskIDs []string
	}{
		Ctx:     ctx,
		TaskIDs: taskIDs,
	}
	mock.lockListByTaskIDs.Lock()
	mock.calls.ListByTaskIDs = append(mock.calls.ListByTaskIDs, callInfo)
	mock.lockListByTaskIDs.Unlock()
	return mock.ListByTaskIDsFunc(ctx, taskIDs)
}

func (mock *categoryRepoMock) ListByTaskIDsCalls() []struct {
	Ctx     context.Context
	TaskIDs []string
} {
	mock.lockListByTaskIDs.RLock()
	calls := mock.calls.ListByTaskIDs
	mock.lockListByTaskIDs.RUnlock()
	return calls
}
