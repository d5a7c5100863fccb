package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/todolist-backend/internal/auth"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/ctxutil"
)

// CreateUser provisions an account. Staff only.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	u, err := s.create(ctx, strings.TrimSpace(input.Username), input.Password, input.TelegramID, input.IsStaff, false)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", u.ID.String()),
		slog.Bool("is_staff", u.IsStaff))

	return u, nil
}

// EnsureServiceAccount creates the system superuser when it does not exist.
// It reports whether a new account was created.
func (s *Service) EnsureServiceAccount(ctx context.Context, username, password string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("user.EnsureServiceAccount: %w", err)
	}

	u, err := s.create(ctx, username, password, nil, true, true)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	s.log.InfoContext(ctx, "service account created", slog.String("user_id", u.ID.String()))
	return true, nil
}

// PublicInfo returns the id and username of the user linked to a chat. Staff only.
func (s *Service) PublicInfo(ctx context.Context, telegramID int64) (*domain.User, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, err
	}

	u, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("user.PublicInfo: %w", err)
	}
	return u, nil
}

func (s *Service) create(ctx context.Context, username, password string, telegramID *int64, staff, superuser bool) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("user.create: %w", err)
	}

	now := s.now()
	u, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		IsStaff:      staff,
		IsSuperuser:  superuser,
		TelegramID:   telegramID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("user.create: %w", err)
	}
	return u, nil
}

func requireStaff(ctx context.Context) error {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}
	if !ctxutil.IsStaffCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}
