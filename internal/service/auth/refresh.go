package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/todolist-backend/internal/auth"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// Refresh performs token rotation and returns new access/refresh tokens.
// Presenting an already revoked token is treated as theft: every refresh
// token of that user is revoked and ErrUnauthorized is returned.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash := auth.HashToken(input.RefreshToken)

	token, err := s.tokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get token: %w", err)
	}

	if token.IsRevoked() {
		s.revokeFamily(ctx, token)
		return nil, domain.ErrUnauthorized
	}

	if token.IsExpired(s.now()) {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted user",
				slog.String("user_id", token.UserID.String()))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	var result *AuthResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tokens.RevokeByID(txCtx, token.ID); err != nil {
			return err
		}
		var issueErr error
		result, issueErr = s.issueTokens(txCtx, user)
		return issueErr
	})
	if err != nil {
		// Lost a race with a concurrent refresh of the same token.
		if errors.Is(err, domain.ErrConflict) {
			s.revokeFamily(ctx, token)
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh rotate: %w", err)
	}
	return result, nil
}

func (s *Service) revokeFamily(ctx context.Context, token *domain.RefreshToken) {
	s.log.WarnContext(ctx, "refresh token reuse detected",
		slog.String("user_id", token.UserID.String()))

	if err := s.tokens.RevokeAllByUser(ctx, token.UserID); err != nil {
		s.log.ErrorContext(ctx, "revoke tokens after reuse",
			slog.String("user_id", token.UserID.String()),
			slog.String("error", err.Error()))
	}
}
