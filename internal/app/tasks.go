package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/todolist-backend/internal/adapter/commentapi"
	"github.com/heartmarshall/todolist-backend/internal/config"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/internal/service/lifecycle"
	"github.com/heartmarshall/todolist-backend/internal/transport/dataloader"
	"github.com/heartmarshall/todolist-backend/internal/transport/middleware"
	"github.com/heartmarshall/todolist-backend/internal/transport/rest"
)

// RunTasks runs the task service: the REST API and the lifecycle sweeps.
func RunTasks(ctx context.Context) error {
	cfg, logger, err := setup("task service",
		config.SectionDatabase,
		config.SectionAuth,
		config.SectionServiceAccount,
		config.SectionCommentsURL,
	)
	if err != nil {
		return err
	}

	stack, err := openTaskStack(ctx, cfg, "todolist-tasks", logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	created, err := stack.users.EnsureServiceAccount(ctx, cfg.Services.Username, cfg.Services.Password)
	if err != nil {
		return err
	}
	if created {
		logger.Info("service account created", slog.String("username", cfg.Services.Username))
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	mux := http.NewServeMux()
	rest.TaskRoutes{
		Auth:  rest.NewAuthHandler(stack.auth, logger),
		Tasks: rest.NewTaskHandler(stack.svc, logger),
		Users: rest.NewUserHandler(stack.users, logger),
		Health: rest.NewHealthHandler(Version,
			rest.Component{Name: "database", Pinger: stack.pool},
		),
		TokenLimit: limiter.Limit(cfg.RateLimit.TokenPerMinute),
		Loaders:    dataloader.Middleware(stack.svc),
	}.Register(mux)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(stack.auth),
	)(mux)

	scheduler := lifecycle.NewScheduler(logger, newReconciler(cfg, stack, logger), lifecycle.SchedulesFrom(cfg.Lifecycle))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(ctx, logger, cfg.Server, handler) })
	g.Go(func() error { return scheduler.Run(ctx) })
	return g.Wait()
}

func newReconciler(cfg *config.Config, stack *taskStack, logger *slog.Logger) *lifecycle.Reconciler {
	return lifecycle.NewReconciler(
		logger,
		stack.tasks,
		commentapi.New(cfg.Services.CommentsURL, cfg.Services.RequestTimeout, logger),
		stack.auth,
		lifecycle.Credentials{Username: cfg.Services.Username, Password: cfg.Services.Password},
		cfg.Services.RequestTimeout,
	)
}

// Sweep runs a single sweep of kind and returns its report.
func Sweep(ctx context.Context, kind domain.SweepKind) (domain.SweepReport, error) {
	cfg, logger, err := setup("sweep",
		config.SectionDatabase,
		config.SectionAuth,
		config.SectionServiceAccount,
		config.SectionCommentsURL,
	)
	if err != nil {
		return domain.SweepReport{}, err
	}

	stack, err := openTaskStack(ctx, cfg, "todolist-sweep", logger)
	if err != nil {
		return domain.SweepReport{}, err
	}
	defer stack.Close()

	report, err := newReconciler(cfg, stack, logger).Sweep(ctx, kind)
	if err != nil {
		return report, fmt.Errorf("sweep %s: %w", kind, err)
	}
	return report, nil
}
