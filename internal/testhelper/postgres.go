package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/todolist-backend/migrations"
)

var (
	pg shared

	migrateOnce sync.Once
	migrateErr  error
)

var postgresSpec = containerSpec{
	image: "postgres:17-alpine",
	port:  "5432",
	env: map[string]string{
		"POSTGRES_USER":     "testuser",
		"POSTGRES_PASSWORD": "testpass",
		"POSTGRES_DB":       "testdb",
	},
	// The entrypoint restarts the server once after init.
	readyLog:  "database system is ready to accept connections",
	readyHits: 2,
}

// SetupTestDB returns a pool connected to the shared PostgreSQL container with
// both the task and comment schemas migrated. The pool is closed via
// t.Cleanup.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := DSN(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("testhelper: pgxpool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// DSN starts the shared container if needed, applies migrations once and
// returns the connection string.
func DSN(t *testing.T) string {
	t.Helper()

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s/testdb?sslmode=disable", pg.get(t, postgresSpec))

	migrateOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		for _, set := range []migrations.Set{migrations.Tasks, migrations.Comments} {
			if _, err := migrations.Up(ctx, dsn, set, nil); err != nil {
				migrateErr = fmt.Errorf("migrate %s: %w", set, err)
				return
			}
		}
	})
	if migrateErr != nil {
		t.Fatalf("testhelper: %v", migrateErr)
	}
	return dsn
}
