package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/ctxutil"
)

// Logout ends every session of the caller. Access tokens already handed
// out stay valid until they expire.
func (s *Service) Logout(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := s.tokens.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.Logout: %w", err)
	}
	s.log.InfoContext(ctx, "refresh tokens revoked", slog.String("user_id", userID.String()))
	return nil
}

// ValidateToken resolves an access token into the caller's id and role.
// The cause of a rejection is logged at debug, callers only see
// ErrUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "access token rejected", slog.String("error", err.Error()))
		return uuid.Nil, "", domain.ErrUnauthorized
	}
	return userID, role, nil
}

// PruneRefreshTokens deletes expired and revoked refresh tokens and returns
// how many were removed.
func (s *Service) PruneRefreshTokens(ctx context.Context) (int, error) {
	n, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("auth.PruneRefreshTokens: %w", err)
	}
	s.log.InfoContext(ctx, "refresh tokens pruned", slog.Int("count", n))
	return n, nil
}
