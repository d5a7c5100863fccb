package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/ctxutil"
)

// Create adds a comment to an existing task. A task the caller cannot see
// yields domain.ErrNotFound; an unreachable task service yields
// domain.ErrUnavailable.
func (s *Service) Create(ctx context.Context, input WriteInput) (*domain.Comment, error) {
	author, err := authorFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	taskID := strings.TrimSpace(input.TaskID)
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}

	now := s.now()
	c, err := s.comments.Create(ctx, &domain.Comment{
		Content:   strings.TrimSpace(input.Content),
		TaskID:    taskID,
		UserID:    author,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.invalidate(ctx, c.ID, c.TaskID)

	s.log.InfoContext(ctx, "comment created",
		slog.Int64("comment_id", c.ID),
		slog.String("task_id", c.TaskID))

	return c, nil
}

// Get returns one comment.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	c, err := cached(ctx, s, commentKey(id), func() (domain.Comment, error) {
		c, err := s.comments.GetByID(ctx, id)
		if err != nil {
			return domain.Comment{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns one page of comments across all tasks.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Comment, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Limit == 0 {
		input.Limit = DefaultListLimit
	}

	return cached(ctx, s, listKey(input.Skip, input.Limit), func() ([]domain.Comment, error) {
		out, err := s.comments.List(ctx, input.Skip, input.Limit)
		if err != nil {
			return nil, fmt.Errorf("list comments: %w", err)
		}
		return out, nil
	})
}

// ListByTask returns the comments of a task the caller can see.
func (s *Service) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}

	return cached(ctx, s, taskKey(taskID), func() ([]domain.Comment, error) {
		out, err := s.comments.ListByTask(ctx, taskID)
		if err != nil {
			return nil, fmt.Errorf("list task comments: %w", err)
		}
		return out, nil
	})
}

// Update replaces content and task of a comment. Only its author or staff
// may update it; the target task is existence-checked.
func (s *Service) Update(ctx context.Context, id int64, input WriteInput) (*domain.Comment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.loadWritable(ctx, id)
	if err != nil {
		return nil, err
	}

	taskID := strings.TrimSpace(input.TaskID)
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}

	updated, err := s.comments.Update(ctx, id, strings.TrimSpace(input.Content), taskID, s.now())
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.invalidate(ctx, id, current.TaskID, updated.TaskID)
	return updated, nil
}

// Delete removes a comment and returns it. Only its author or staff may
// delete it. A repeat yields domain.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) (*domain.Comment, error) {
	if _, err := s.loadWritable(ctx, id); err != nil {
		return nil, err
	}

	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}

	s.invalidate(ctx, id, deleted.TaskID)

	s.log.InfoContext(ctx, "comment deleted",
		slog.Int64("comment_id", id),
		slog.String("task_id", deleted.TaskID))

	return deleted, nil
}

func (s *Service) loadWritable(ctx context.Context, id int64) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	c, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}

	if c.UserID != userID && !ctxutil.IsStaffCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func (s *Service) requireTask(ctx context.Context, taskID string) error {
	ex, err := s.exists.Check(ctx, taskID)
	if err != nil {
		return err
	}
	if ex != domain.ExistenceYes {
		return fmt.Errorf("task %s: %w", taskID, domain.ErrNotFound)
	}
	return nil
}

// authorFor returns the author id of a new comment: the caller, or the
// requested user when the caller is staff.
func authorFor(ctx context.Context, requested *uuid.UUID) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if requested != nil && *requested != uuid.Nil && ctxutil.IsStaffCtx(ctx) {
		return *requested, nil
	}
	return userID, nil
}
