package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

// staffToken returns a cached staff access token, logging in when needed.
func (b *Bot) staffToken(ctx context.Context, fresh bool) (string, error) {
	b.staffMu.Lock()
	defer b.staffMu.Unlock()

	if b.staffAccess != "" && !fresh {
		return b.staffAccess, nil
	}
	tokens, err := b.tasks.Login(ctx, b.staff.Username, b.staff.Password)
	if err != nil {
		return "", fmt.Errorf("staff login: %w", err)
	}
	b.staffAccess = tokens.Access
	return b.staffAccess, nil
}

// asStaff runs fn with the staff token, logging in again once when the
// cached token has been rejected.
func (b *Bot) asStaff(ctx context.Context, fn func(token string) error) error {
	token, err := b.staffToken(ctx, false)
	if err != nil {
		return err
	}
	err = fn(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}
	if token, err = b.staffToken(ctx, true); err != nil {
		return err
	}
	return fn(token)
}

// asUser runs fn with the chat user's access token. A rejected token is
// rotated through the refresh endpoint, or replaced by a fresh login when
// the refresh token is gone too.
func (b *Bot) asUser(ctx context.Context, s *Session, fn func(token string) error) error {
	if s.accessToken == "" {
		if err := b.userLogin(ctx, s); err != nil {
			return err
		}
	}
	err := fn(s.accessToken)
	if !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}

	b.log.DebugContext(ctx, "user token rejected", slog.Int64("chat_id", s.ChatID))
	if s.refreshToken != "" {
		if tokens, rerr := b.tasks.Refresh(ctx, s.refreshToken); rerr == nil {
			s.accessToken, s.refreshToken = tokens.Access, tokens.Refresh
			return fn(s.accessToken)
		}
	}
	if err := b.userLogin(ctx, s); err != nil {
		return err
	}
	return fn(s.accessToken)
}

func (b *Bot) userLogin(ctx context.Context, s *Session) error {
	tokens, err := b.tasks.Login(ctx, s.Username, s.password)
	if err != nil {
		return fmt.Errorf("user login: %w", err)
	}
	s.accessToken, s.refreshToken = tokens.Access, tokens.Refresh
	return nil
}

// provision finds or creates the account bound to the chat, logs it in and
// loads the stored language.
func (b *Bot) provision(ctx context.Context, s *Session, username string) error {
	s.password = b.passwordPrefix + strconv.FormatInt(s.ChatID, 10)
	if username == "" {
		username = "tg_" + strconv.FormatInt(s.ChatID, 10)
	}

	var info *todoapi.PublicInfo
	err := b.asStaff(ctx, func(token string) error {
		var err error
		info, err = b.tasks.PublicInfo(ctx, token, s.ChatID)
		return err
	})
	if err != nil {
		return fmt.Errorf("look up chat %d: %w", s.ChatID, err)
	}

	if info != nil {
		s.Username = info.Username
	} else {
		chatID := s.ChatID
		err = b.asStaff(ctx, func(token string) error {
			created, err := b.tasks.CreateUser(ctx, token, todoapi.CreateUser{
				Username:   username,
				Password:   s.password,
				TelegramID: &chatID,
			})
			if err != nil {
				return err
			}
			s.Username = created.Username
			return nil
		})
		if err != nil {
			return fmt.Errorf("create user for chat %d: %w", s.ChatID, err)
		}
		b.log.InfoContext(ctx, "user provisioned",
			slog.Int64("chat_id", s.ChatID),
			slog.String("username", s.Username))
	}

	if err := b.userLogin(ctx, s); err != nil {
		return err
	}

	return b.asStaff(ctx, func(token string) error {
		locale, err := b.tasks.GetLocale(ctx, token, s.ChatID)
		if err != nil {
			return err
		}
		if b.catalog.Supported(locale) {
			s.Locale = locale
		}
		return nil
	})
}

func (b *Bot) saveLocale(ctx context.Context, s *Session, locale string) error {
	return b.asStaff(ctx, func(token string) error {
		return b.tasks.SetLocale(ctx, token, s.ChatID, locale)
	})
}
