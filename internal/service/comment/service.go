// Package comment implements the comment service: CRUD over the comment
// store, task existence checks against the task service and response caching.
package comment

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

type commentRepo interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	List(ctx context.Context, skip, limit int) ([]domain.Comment, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error)
	Update(ctx context.Context, id int64, content, taskID string, now time.Time) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) (*domain.Comment, error)
}

type existenceChecker interface {
	Check(ctx context.Context, taskID string) (domain.Existence, error)
}

type responseCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Service provides comment operations.
type Service struct {
	log      *slog.Logger
	comments commentRepo
	exists   existenceChecker
	cache    responseCache
	ttl      time.Duration
	now      func() time.Time
}

// NewService creates a new comment service. ttl bounds cached read
// responses; zero disables response caching.
func NewService(
	log *slog.Logger,
	comments commentRepo,
	exists existenceChecker,
	cache responseCache,
	ttl time.Duration,
) *Service {
	return &Service{
		log:      log.With("service", "comment"),
		comments: comments,
		exists:   exists,
		cache:    cache,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Cache keys of read responses.
const (
	listKeyPrefix = "list:"
	taskKeyPrefix = "task:"
)

func listKey(skip, limit int) string {
	return listKeyPrefix + strconv.Itoa(skip) + ":" + strconv.Itoa(limit)
}

func commentKey(id int64) string {
	return "comment:" + strconv.FormatInt(id, 10)
}

func taskKey(taskID string) string {
	return taskKeyPrefix + taskID
}

// cached loads key from the cache or fills it with load. Cache failures are
// logged and never fail the request.
func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	var v T
	if s.ttl > 0 {
		hit, err := s.cache.Get(ctx, key, &v)
		if err != nil {
			s.log.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		} else if hit {
			return v, nil
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
			s.log.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return v, nil
}

// invalidate drops every cached response a write to the given tasks and
// comment may have changed.
func (s *Service) invalidate(ctx context.Context, id int64, taskIDs ...string) {
	keys := []string{commentKey(id)}
	for _, t := range taskIDs {
		keys = append(keys, taskKey(t))
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.WarnContext(ctx, "cache invalidation failed", slog.String("error", err.Error()))
	}
	if err := s.cache.DeletePrefix(ctx, listKeyPrefix); err != nil {
		s.log.WarnContext(ctx, "cache invalidation failed", slog.String("error", err.Error()))
	}
}
