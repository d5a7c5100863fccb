// Package app wires configuration, stores, services and transports into the
// runnable processes of the system.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/todolist-backend/internal/adapter/postgres"
	categoryrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/category"
	localerepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/locale"
	taskrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/task"
	tokenrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/todolist-backend/internal/auth"
	"github.com/heartmarshall/todolist-backend/internal/config"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/migrations"
	authsvc "github.com/heartmarshall/todolist-backend/internal/service/auth"
	tasksvc "github.com/heartmarshall/todolist-backend/internal/service/task"
	usersvc "github.com/heartmarshall/todolist-backend/internal/service/user"
)

// setup loads configuration, checks the sections the caller depends on and
// builds the process logger.
func setup(component string, sections ...config.Section) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Require(sections...); err != nil {
		return nil, nil, err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting "+component,
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)
	return cfg, logger, nil
}

// openDatabase applies pending migrations of set when auto-migrate is on and
// opens the pool.
func openDatabase(
	ctx context.Context,
	cfg config.DatabaseConfig,
	set migrations.Set,
	appName string,
	logger *slog.Logger,
) (*pgxpool.Pool, error) {
	if cfg.AutoMigrate {
		n, err := migrations.Up(ctx, cfg.DSN, set, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("migrations applied", slog.String("set", string(set)), slog.Int("count", n))
	}

	pool, err := postgres.NewPool(ctx, cfg, appName)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// taskStack is the task store with the services built on it.
type taskStack struct {
	pool  *pgxpool.Pool
	tasks *taskrepo.Repo
	jwt   *auth.JWTManager
	auth  *authsvc.Service
	users *usersvc.Service
	svc   *tasksvc.Service
}

func openTaskStack(ctx context.Context, cfg *config.Config, appName string, logger *slog.Logger) (*taskStack, error) {
	pool, err := openDatabase(ctx, cfg.Database, migrations.Tasks, appName, logger)
	if err != nil {
		return nil, err
	}

	newID, err := domain.NewIDGenerator()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("id generator: %w", err)
	}

	tx := postgres.NewTxManager(pool)
	tasks := taskrepo.New(pool)
	users := userrepo.New(pool)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	return &taskStack{
		pool:  pool,
		tasks: tasks,
		jwt:   jwtManager,
		auth:  authsvc.NewService(logger, users, tokenrepo.New(pool), tx, jwtManager, cfg.Auth),
		users: usersvc.NewService(logger, users, localerepo.New(pool), cfg.Auth),
		svc:   tasksvc.NewService(logger, tasks, categoryrepo.New(pool), tx, newID),
	}, nil
}

func (s *taskStack) Close() { s.pool.Close() }

// Migrate applies every pending migration of the given sets.
func Migrate(ctx context.Context, sets ...migrations.Set) error {
	cfg, logger, err := setup("migrate", config.SectionDatabase)
	if err != nil {
		return err
	}

	for _, set := range sets {
		n, err := migrations.Up(ctx, cfg.Database.DSN, set, logger)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", slog.String("set", string(set)), slog.Int("count", n))
	}
	return nil
}

// CleanupTokens deletes expired and revoked refresh tokens.
func CleanupTokens(ctx context.Context) (int, error) {
	cfg, logger, err := setup("token cleanup", config.SectionDatabase)
	if err != nil {
		return 0, err
	}

	stack, err := openTaskStack(ctx, cfg, "todolist-cleanup", logger)
	if err != nil {
		return 0, err
	}
	defer stack.Close()

	return stack.auth.PruneRefreshTokens(ctx)
}
