package user

import (
	"context"
	"fmt"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

// GetLocale returns the stored chat language. Staff only.
func (s *Service) GetLocale(ctx context.Context, chatID int64) (*domain.UserLocale, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, err
	}

	l, err := s.locales.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("user.GetLocale: %w", err)
	}
	return l, nil
}

// SetLocale stores the chat language. Staff only.
func (s *Service) SetLocale(ctx context.Context, chatID int64, locale string) (*domain.UserLocale, error) {
	if err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if !domain.IsSupportedLocale(locale) {
		return nil, domain.NewValidationError("locale", "must be en or ru")
	}

	l, err := s.locales.Upsert(ctx, chatID, locale)
	if err != nil {
		return nil, fmt.Errorf("user.SetLocale: %w", err)
	}
	return l, nil
}
