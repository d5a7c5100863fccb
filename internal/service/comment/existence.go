package comment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/ctxutil"
)

type taskLookup interface {
	TaskExists(ctx context.Context, token, taskID string) (domain.Existence, error)
}

type existenceCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Existence answers whether a task is visible to the calling identity by
// asking the task service with the caller's own bearer token. Definite
// answers are cached for ttl per identity and task; concurrent checks of
// the same key share one downstream call. Indeterminate outcomes are never
// cached.
type Existence struct {
	tasks taskLookup
	cache existenceCache
	ttl   time.Duration
	log   *slog.Logger
	group singleflight.Group
}

func NewExistence(log *slog.Logger, tasks taskLookup, cache existenceCache, ttl time.Duration) *Existence {
	return &Existence{
		tasks: tasks,
		cache: cache,
		ttl:   ttl,
		log:   log.With("service", "existence"),
	}
}

// Check reports ExistenceYes or ExistenceNo. A failure to reach the task
// service returns an error wrapping domain.ErrUnavailable.
func (e *Existence) Check(ctx context.Context, taskID string) (domain.Existence, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ExistenceNo, domain.ErrUnauthorized
	}
	token := ctxutil.BearerTokenFromCtx(ctx)
	if token == "" {
		return domain.ExistenceNo, domain.ErrUnauthorized
	}

	key := "exists:" + userID.String() + ":" + taskID

	if e.ttl > 0 {
		var cached bool
		hit, err := e.cache.Get(ctx, key, &cached)
		if err != nil {
			e.log.WarnContext(ctx, "existence cache read failed", slog.String("error", err.Error()))
		} else if hit {
			return toExistence(cached), nil
		}
	}

	// The shared call outlives any single waiter, so a caller that goes away
	// does not fail the others. The task client bounds it with its timeout.
	shared := context.WithoutCancel(ctx)
	v, err, _ := e.group.Do(key, func() (any, error) {
		ex, err := e.tasks.TaskExists(shared, token, taskID)
		if err != nil {
			return nil, err
		}
		if e.ttl > 0 {
			if err := e.cache.Set(shared, key, ex == domain.ExistenceYes, e.ttl); err != nil {
				e.log.WarnContext(ctx, "existence cache write failed", slog.String("error", err.Error()))
			}
		}
		return ex, nil
	})
	if err != nil {
		e.log.WarnContext(ctx, "task existence indeterminate",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()))
		return domain.ExistenceNo, fmt.Errorf("check task %s: %w", taskID, err)
	}
	return v.(domain.Existence), nil
}

func toExistence(b bool) domain.Existence {
	if b {
		return domain.ExistenceYes
	}
	return domain.ExistenceNo
}
