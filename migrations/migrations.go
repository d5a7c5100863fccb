// Package migrations embeds the goose migrations of both stores and applies
// them. The task store and the comment store keep separate version tables so
// they can share one database in development and split in production.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"
)

//go:embed tasks/*.sql comments/*.sql
var files embed.FS

// Set names one migration directory.
type Set string

const (
	Tasks    Set = "tasks"
	Comments Set = "comments"
)

func (s Set) table() string {
	return "goose_" + string(s) + "_version"
}

// FS returns the migration files of the set.
func (s Set) FS() (fs.FS, error) {
	sub, err := fs.Sub(files, string(s))
	if err != nil {
		return nil, fmt.Errorf("migrations: %s: %w", s, err)
	}
	return sub, nil
}

// NewProvider opens a goose provider for the set on db.
func NewProvider(db *sql.DB, set Set, logger *slog.Logger) (*goose.Provider, error) {
	fsys, err := set.FS()
	if err != nil {
		return nil, err
	}

	opts := []goose.ProviderOption{goose.WithTableName(set.table())}
	if logger != nil {
		opts = append(opts, goose.WithSlog(logger.With("migrations", string(set))))
	}

	// goose.NewProvider handles $$-delimited bodies, unlike the legacy goose.Up.
	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys, opts...)
	if err != nil {
		return nil, fmt.Errorf("migrations: %s: new provider: %w", set, err)
	}
	return p, nil
}

// Up opens dsn through database/sql and applies all pending migrations of set.
func Up(ctx context.Context, dsn string, set Set, logger *slog.Logger) (int, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return 0, fmt.Errorf("migrations: open: %w", err)
	}
	defer db.Close()

	p, err := NewProvider(db, set, logger)
	if err != nil {
		return 0, err
	}

	results, err := p.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations: %s: up: %w", set, err)
	}
	return len(results), nil
}
