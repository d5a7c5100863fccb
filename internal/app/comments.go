package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/todolist-backend/internal/adapter/cache"
	commentrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/todolist-backend/internal/adapter/taskapi"
	"github.com/heartmarshall/todolist-backend/internal/auth"
	"github.com/heartmarshall/todolist-backend/internal/config"
	"github.com/heartmarshall/todolist-backend/internal/service/comment"
	"github.com/heartmarshall/todolist-backend/internal/transport/middleware"
	"github.com/heartmarshall/todolist-backend/internal/transport/rest"
	"github.com/heartmarshall/todolist-backend/migrations"
)

// RunComments runs the comment service. Tokens are issued by the task
// service and verified here with the shared secret.
func RunComments(ctx context.Context) error {
	cfg, logger, err := setup("comment service",
		config.SectionDatabase,
		config.SectionAuth,
		config.SectionTasksURL,
	)
	if err != nil {
		return err
	}

	pool, err := openDatabase(ctx, cfg.Database, migrations.Comments, "todolist-comments", logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	store, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	tasks := taskapi.New(cfg.Services.TasksURL, cfg.Services.RequestTimeout, logger)
	existence := comment.NewExistence(logger, tasks, store, cfg.Cache.ExistenceTTL)
	svc := comment.NewService(logger, commentrepo.New(pool), existence, store, cfg.Cache.ResponseTTL)

	mux := http.NewServeMux()
	rest.CommentRoutes{
		Comments: rest.NewCommentHandler(svc, logger),
		Health: rest.NewHealthHandler(Version,
			rest.Component{Name: "database", Pinger: pool},
			rest.Component{Name: "cache", Pinger: store},
			rest.Component{Name: "tasks", Pinger: tasks, Optional: true},
		),
	}.Register(mux)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(mux)

	return serve(ctx, logger, cfg.Server, handler)
}

// openCache connects to redis when a URL is configured and falls back to
// the in-process store otherwise.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Store, error) {
	if cfg.Redis.URL == "" {
		logger.Info("cache: in-process")
		return cache.NewMemory(), nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	logger.Info("cache: redis")
	return cache.NewRedis(client, cfg.Cache.KeyPrefix), nil
}
