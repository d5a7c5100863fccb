package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/config"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

// localeRepo stores per-chat language preferences.
type localeRepo interface {
	Get(ctx context.Context, chatID int64) (*domain.UserLocale, error)
	Upsert(ctx context.Context, chatID int64, locale string) (*domain.UserLocale, error)
}

// Service implements user provisioning and chat preferences.
type Service struct {
	log     *slog.Logger
	users   userRepo
	locales localeRepo
	cfg     config.AuthConfig
	now     func() time.Time
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	locales localeRepo,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "user"),
		users:   users,
		locales: locales,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}
