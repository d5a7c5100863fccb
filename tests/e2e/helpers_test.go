//go:build e2e

package e2e_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/todolist-backend/internal/adapter/cache"
	"github.com/heartmarshall/todolist-backend/internal/adapter/commentapi"
	"github.com/heartmarshall/todolist-backend/internal/adapter/postgres"
	categoryrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/category"
	commentrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/comment"
	localerepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/locale"
	taskrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/task"
	"github.com/heartmarshall/todolist-backend/internal/testhelper"
	tokenrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/todolist-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/todolist-backend/internal/adapter/taskapi"
	authpkg "github.com/heartmarshall/todolist-backend/internal/auth"
	"github.com/heartmarshall/todolist-backend/internal/config"
	"github.com/heartmarshall/todolist-backend/internal/domain"
	authsvc "github.com/heartmarshall/todolist-backend/internal/service/auth"
	commentsvc "github.com/heartmarshall/todolist-backend/internal/service/comment"
	"github.com/heartmarshall/todolist-backend/internal/service/lifecycle"
	tasksvc "github.com/heartmarshall/todolist-backend/internal/service/task"
	usersvc "github.com/heartmarshall/todolist-backend/internal/service/user"
	"github.com/heartmarshall/todolist-backend/internal/transport/dataloader"
	"github.com/heartmarshall/todolist-backend/internal/transport/middleware"
	"github.com/heartmarshall/todolist-backend/internal/transport/rest"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

const (
	staffUsername = "svc-e2e"
	staffPassword = "svc-e2e-password"
)

// stack is the task service, the comment service and the reconciler running
// in-process against one PostgreSQL container.
type stack struct {
	TasksURL    string
	CommentsURL string
	Pool        *pgxpool.Pool
	Tasks       *taskapi.Client
	Comments    *commentapi.Client
	Reconciler  *lifecycle.Reconciler

	log   *slog.Logger
	repo  *taskrepo.Repo
	authn *authsvc.Service
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func setupStack(t *testing.T) *stack {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	ctx := context.Background()

	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  time.Hour,
		PasswordHashCost: 4,
	}
	cors := config.CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowedHeaders: "Authorization,Content-Type",
		MaxAge:         86400,
	}

	// Task service.
	newID, err := domain.NewIDGenerator()
	require.NoError(t, err)

	txm := postgres.NewTxManager(pool)
	tasks := taskrepo.New(pool)
	users := userrepo.New(pool)
	jwtMgr := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, tokenrepo.New(pool), txm, jwtMgr, authCfg)
	userService := usersvc.NewService(logger, users, localerepo.New(pool), authCfg)
	taskService := tasksvc.NewService(logger, tasks, categoryrepo.New(pool), txm, newID)

	_, err = userService.EnsureServiceAccount(ctx, staffUsername, staffPassword)
	require.NoError(t, err)

	taskMux := http.NewServeMux()
	rest.TaskRoutes{
		Auth:    rest.NewAuthHandler(authService, logger),
		Tasks:   rest.NewTaskHandler(taskService, logger),
		Users:   rest.NewUserHandler(userService, logger),
		Health:  rest.NewHealthHandler("e2e", rest.Component{Name: "database", Pinger: pool}),
		Loaders: dataloader.Middleware(taskService),
	}.Register(taskMux)

	taskSrv := httptest.NewServer(middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(cors),
		middleware.Auth(authService),
	)(taskMux))
	t.Cleanup(taskSrv.Close)

	taskClient := taskapi.New(taskSrv.URL+"/api", 5*time.Second, logger)

	// Comment service.
	store := cache.NewMemory()
	existence := commentsvc.NewExistence(logger, taskClient, store, time.Second)
	commentService := commentsvc.NewService(logger, commentrepo.New(pool), existence, store, time.Minute)

	commentMux := http.NewServeMux()
	rest.CommentRoutes{
		Comments: rest.NewCommentHandler(commentService, logger),
		Health: rest.NewHealthHandler("e2e",
			rest.Component{Name: "database", Pinger: pool},
			rest.Component{Name: "cache", Pinger: store},
		),
	}.Register(commentMux)

	commentSrv := httptest.NewServer(middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Auth(jwtMgr),
	)(commentMux))
	t.Cleanup(commentSrv.Close)

	commentClient := commentapi.New(commentSrv.URL, 5*time.Second, logger)

	s := &stack{
		TasksURL:    taskSrv.URL,
		CommentsURL: commentSrv.URL,
		Pool:        pool,
		Tasks:       taskClient,
		Comments:    commentClient,
		log:         logger,
		repo:        tasks,
		authn:       authService,
	}
	s.Reconciler = s.reconcilerFor(commentSrv.URL)
	return s
}

// reconcilerFor builds a reconciler that reaches the comment service at url.
func (s *stack) reconcilerFor(url string) *lifecycle.Reconciler {
	return lifecycle.NewReconciler(
		s.log,
		s.repo,
		commentapi.New(url, 2*time.Second, s.log),
		s.authn,
		lifecycle.Credentials{Username: staffUsername, Password: staffPassword},
		2*time.Second,
	)
}

// staffToken logs in as the service account.
func (s *stack) staffToken(t *testing.T) string {
	t.Helper()

	tokens, err := s.Tasks.Login(context.Background(), staffUsername, staffPassword)
	require.NoError(t, err)
	return tokens.Access
}

// newUser provisions a regular user through the staff endpoint and returns
// an access token for it.
func (s *stack) newUser(t *testing.T) (string, uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	username := fmt.Sprintf("e2e-%s", uuid.NewString()[:8])
	password := "password-" + username

	_, err := s.Tasks.CreateUser(ctx, s.staffToken(t), todoapi.CreateUser{
		Username: username,
		Password: password,
	})
	require.NoError(t, err)

	tokens, err := s.Tasks.Login(ctx, username, password)
	require.NoError(t, err)
	return tokens.Access, tokens.UserID
}

// commentCount counts stored comments of a task bypassing every cache.
func (s *stack) commentCount(t *testing.T, taskID string) int {
	t.Helper()

	var n int
	err := s.Pool.QueryRow(context.Background(),
		`SELECT count(*) FROM comments WHERE task_id = $1`, taskID).Scan(&n)
	require.NoError(t, err)
	return n
}
