package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/todolist-backend/internal/auth"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// Login authenticates a user with username + password.
// Returns ErrUnauthorized if the user is not found or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Login get user: %w", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Login check password: %w", err)
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()))

	return result, nil
}

// ServiceToken returns a short-lived access token for the system identity
// named by the credentials. No refresh token is stored.
func (s *Service) ServiceToken(ctx context.Context, username, password string) (string, error) {
	if err := (LoginInput{Username: username, Password: password}).Validate(); err != nil {
		return "", fmt.Errorf("service account: %w", domain.ErrUnauthorized)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service account %q: %w", username, domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("auth.ServiceToken get user: %w", err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("auth.ServiceToken check password: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("service account %q: %w", username, domain.ErrUnauthorized)
	}

	token, err := s.accessToken(user)
	if err != nil {
		return "", fmt.Errorf("auth.ServiceToken: %w", err)
	}
	return token, nil
}
