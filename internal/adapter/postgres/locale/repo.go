// Package locale stores per-chat language preferences.
package locale

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/todolist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the stored preference or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, chatID int64) (*domain.UserLocale, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var l domain.UserLocale
	err := q.QueryRow(ctx,
		`SELECT chat_id, locale, updated_at FROM user_locales WHERE chat_id = $1`, chatID,
	).Scan(&l.ChatID, &l.Locale, &l.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user_locale", chatID)
	}
	return &l, nil
}

// Upsert stores the preference, replacing any previous value.
func (r *Repo) Upsert(ctx context.Context, chatID int64, locale string) (*domain.UserLocale, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var l domain.UserLocale
	err := q.QueryRow(ctx,
		`INSERT INTO user_locales (chat_id, locale, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (chat_id) DO UPDATE SET locale = EXCLUDED.locale, updated_at = now()
		 RETURNING chat_id, locale, updated_at`, chatID, locale,
	).Scan(&l.ChatID, &l.Locale, &l.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "user_locale", chatID)
	}
	return &l, nil
}
