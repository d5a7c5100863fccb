package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account of the task service.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsStaff      bool
	IsSuperuser  bool
	TelegramID   *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role returns the token role for the user.
func (u *User) Role() UserRole {
	if u.IsStaff || u.IsSuperuser {
		return UserRoleStaff
	}
	return UserRoleUser
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// Supported chat locales.
const (
	LocaleEN = "en"
	LocaleRU = "ru"

	DefaultLocale = LocaleEN
)

// IsSupportedLocale reports whether the locale has a message catalog.
func IsSupportedLocale(locale string) bool {
	return locale == LocaleEN || locale == LocaleRU
}

// UserLocale is the language preference of an external chat.
type UserLocale struct {
	ChatID    int64
	Locale    string
	UpdatedAt time.Time
}
