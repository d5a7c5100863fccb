package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/ctxutil"
)

// CreateCategory adds a category to the shared namespace.
// A taken name yields domain.ErrAlreadyExists.
func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if errs := validateCategoryName("name", name); errs != nil {
		return nil, domain.NewValidationErrors(errs)
	}

	c, err := s.categories.Create(ctx, &domain.Category{
		ID:        s.newID(),
		Name:      domain.NormalizeName(name),
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.InfoContext(ctx, "category created", slog.String("category_id", c.ID))
	return c, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.categories.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// RenameCategory changes a category name. Tasks keep their links.
func (s *Service) RenameCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if errs := validateCategoryName("name", name); errs != nil {
		return nil, domain.NewValidationErrors(errs)
	}

	c, err := s.categories.Rename(ctx, id, domain.NormalizeName(name))
	if err != nil {
		return nil, fmt.Errorf("rename category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category and unlinks it from every task.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.log.InfoContext(ctx, "category deleted", slog.String("category_id", id))
	return nil
}

// CategoriesByTaskIDs batches category lookups for task listings.
func (s *Service) CategoriesByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]domain.Category, error) {
	return s.categories.ListByTaskIDs(ctx, taskIDs)
}
