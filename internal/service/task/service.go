package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

type taskRepo interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, id string, p domain.TaskUpdateParams, now time.Time) (*domain.Task, error)
	Touch(ctx context.Context, id string, now time.Time) error
	Delete(ctx context.Context, id string) error
	SetCategories(ctx context.Context, taskID string, categoryIDs []string) error
}

type categoryRepo interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetOrCreate(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Rename(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	ListByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]domain.Category, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides task and category operations.
type Service struct {
	log        *slog.Logger
	tasks      taskRepo
	categories categoryRepo
	tx         txManager
	newID      domain.IDGenerator
	now        func() time.Time
}

// NewService creates a new task service.
func NewService(
	log *slog.Logger,
	tasks taskRepo,
	categories categoryRepo,
	tx txManager,
	newID domain.IDGenerator,
) *Service {
	return &Service{
		log:        log.With("service", "task"),
		tasks:      tasks,
		categories: categories,
		tx:         tx,
		newID:      newID,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// resolveCategories get-or-creates every name and returns the category ids
// in input order. Names must already be normalized and unique.
func (s *Service) resolveCategories(ctx context.Context, names []string) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(names))
	now := s.now()
	for _, name := range names {
		c, err := s.categories.GetOrCreate(ctx, &domain.Category{
			ID:        s.newID(),
			Name:      name,
			CreatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("resolve category %q: %w", name, err)
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *Service) attachCategories(ctx context.Context, t *domain.Task) error {
	byTask, err := s.categories.ListByTaskIDs(ctx, []string{t.ID})
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	t.Categories = byTask[t.ID]
	if t.Categories == nil {
		t.Categories = []domain.Category{}
	}
	return nil
}

func categoryIDs(cats []domain.Category) []string {
	ids := make([]string, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	return ids
}
