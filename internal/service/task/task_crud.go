package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/ctxutil"
)

// CreateTask creates a task owned by the authenticated user. Category names
// are resolved get-or-create.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var created *domain.Task
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.tasks.Create(txCtx, &domain.Task{
			ID:          s.newID(),
			UserID:      userID,
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
			DueDate:     input.DueDate,
			Completed:   input.Completed,
		})
		if err != nil {
			return fmt.Errorf("create task: %w", err)
		}

		cats, err := s.resolveCategories(txCtx, uniqueNames(input.Categories))
		if err != nil {
			return err
		}
		if len(cats) > 0 {
			if err := s.tasks.SetCategories(txCtx, created.ID, categoryIDs(cats)); err != nil {
				return fmt.Errorf("link categories: %w", err)
			}
		}
		created.Categories = cats
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "task created",
		slog.String("user_id", userID.String()),
		slog.String("task_id", created.ID))

	return created, nil
}

// GetTask returns a task visible to the caller: its owner, or any staff
// identity. Other callers get domain.ErrNotFound.
func (s *Service) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.getVisible(ctx, id, ctxutil.IsStaffCtx(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasks returns the caller's tasks. Categories are not loaded; the
// transport layer batches them per request.
func (s *Service) ListTasks(ctx context.Context, input ListTasksInput) ([]domain.Task, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.TaskFilter{
		UserID:    &userID,
		Completed: input.Completed,
		DueBefore: input.DueBefore,
		Category:  input.Category,
		Search:    input.Search,
		Limit:     domain.ClampLimit(input.Limit),
		Offset:    input.Offset,
	}
	if filter.Category != nil {
		n := domain.NormalizeName(*filter.Category)
		filter.Category = &n
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask merges the present fields into the caller's task.
func (s *Service) UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.TaskUpdateParams{
		Description:  input.Description,
		DueDate:      input.DueDate,
		ClearDueDate: input.ClearDueDate,
		Completed:    input.Completed,
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		params.Title = &title
	}

	var updated *domain.Task
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.getVisible(txCtx, input.ID, false); err != nil {
			return err
		}

		now := s.now()
		var err error
		updated, err = s.tasks.Update(txCtx, input.ID, params, now)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}

		if input.Categories == nil {
			return nil
		}
		cats, err := s.resolveCategories(txCtx, uniqueNames(*input.Categories))
		if err != nil {
			return err
		}
		if err := s.tasks.SetCategories(txCtx, input.ID, categoryIDs(cats)); err != nil {
			return fmt.Errorf("replace categories: %w", err)
		}
		if params.IsEmpty() {
			if err := s.tasks.Touch(txCtx, input.ID, now); err != nil {
				return fmt.Errorf("touch task: %w", err)
			}
			updated.UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.attachCategories(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask hard-deletes the caller's task. A repeat returns domain.ErrNotFound.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.getVisible(ctx, id, false); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.log.InfoContext(ctx, "task deleted", slog.String("task_id", id))
	return nil
}

// getVisible loads a task and hides it from non-owners unless staff is set.
func (s *Service) getVisible(ctx context.Context, id string, staff bool) (*domain.Task, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	if t.UserID != userID && !staff {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return t, nil
}
