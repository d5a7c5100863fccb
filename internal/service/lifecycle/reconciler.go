// Package lifecycle removes completed and overdue tasks together with their
// comments in the remote comment service.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/domain"
	"github.com/heartmarshall/todolist-backend/pkg/todoapi"
)

type taskStore interface {
	ListIDs(ctx context.Context, f domain.TaskFilter) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type commentClient interface {
	ListByTask(ctx context.Context, token, taskID string) ([]todoapi.Comment, error)
	Delete(ctx context.Context, token string, id int64) error
}

type tokenIssuer interface {
	ServiceToken(ctx context.Context, username, password string) (string, error)
}

// Credentials identify the system account sweeps act as.
type Credentials struct {
	Username string
	Password string
}

// Reconciler runs sweeps. It holds no state between sweeps; every call
// re-derives its candidate set.
type Reconciler struct {
	log         *slog.Logger
	tasks       taskStore
	comments    commentClient
	tokens      tokenIssuer
	creds       Credentials
	callTimeout time.Duration
	now         func() time.Time
}

// NewReconciler creates a Reconciler. callTimeout bounds every single
// downstream call; zero leaves calls bounded only by the sweep context.
func NewReconciler(
	log *slog.Logger,
	tasks taskStore,
	comments commentClient,
	tokens tokenIssuer,
	creds Credentials,
	callTimeout time.Duration,
) *Reconciler {
	return &Reconciler{
		log:         log.With("service", "lifecycle"),
		tasks:       tasks,
		comments:    comments,
		tokens:      tokens,
		creds:       creds,
		callTimeout: callTimeout,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Sweep deletes every candidate of kind whose comments could be removed
// first. It returns an error only when the sweep could not start: no token
// or no candidate set. Per-candidate failures are reported in the report.
func (r *Reconciler) Sweep(ctx context.Context, kind domain.SweepKind) (domain.SweepReport, error) {
	report := domain.SweepReport{Kind: kind, StartedAt: r.now()}
	log := r.log.With(slog.String("sweep", kind.String()))

	if !kind.IsValid() {
		return report, fmt.Errorf("sweep kind %q: %w", kind, domain.ErrValidation)
	}

	token, err := r.token(ctx)
	if err != nil {
		log.ErrorContext(ctx, "sweep aborted: service token", slog.String("error", err.Error()))
		report.FinishedAt = r.now()
		return report, fmt.Errorf("sweep %s: %w", kind, err)
	}

	var ids []string
	err = r.call(ctx, func(ctx context.Context) error {
		var err error
		ids, err = r.tasks.ListIDs(ctx, kind.Filter(report.StartedAt))
		return err
	})
	if err != nil {
		log.ErrorContext(ctx, "sweep aborted: list candidates", slog.String("error", err.Error()))
		report.FinishedAt = r.now()
		return report, fmt.Errorf("sweep %s: list candidates: %w", kind, err)
	}
	report.Candidates = len(ids)

	for _, id := range ids {
		if ctx.Err() != nil {
			report.FailedTaskIDs = append(report.FailedTaskIDs, id)
			continue
		}

		deleted, err := r.reconcile(ctx, token, id)
		report.DeletedComments += deleted
		if err != nil {
			log.WarnContext(ctx, "candidate skipped",
				slog.String("task_id", id),
				slog.String("error", err.Error()))
			report.FailedTaskIDs = append(report.FailedTaskIDs, id)
			continue
		}
		report.DeletedTasks++
	}

	report.FinishedAt = r.now()

	log.InfoContext(ctx, "sweep finished",
		slog.Int("candidates", report.Candidates),
		slog.Int("deleted_tasks", report.DeletedTasks),
		slog.Int("deleted_comments", report.DeletedComments),
		slog.Int("failed", len(report.FailedTaskIDs)),
		slog.Duration("took", report.FinishedAt.Sub(report.StartedAt)))

	return report, nil
}

// reconcile removes the comments of one task, then the task itself. The
// task survives any comment failure. It returns the number of comments
// removed.
func (r *Reconciler) reconcile(ctx context.Context, token, taskID string) (deleted int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	var comments []todoapi.Comment
	err = r.call(ctx, func(ctx context.Context) error {
		var err error
		comments, err = r.comments.ListByTask(ctx, token, taskID)
		return err
	})
	// The candidate was just read from the store, so a 404 here means the
	// comment service could not confirm the task and nothing was cleaned.
	if err != nil {
		return 0, fmt.Errorf("list comments: %w", err)
	}

	for _, c := range comments {
		err := r.call(ctx, func(ctx context.Context) error {
			return r.comments.Delete(ctx, token, c.ID)
		})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return deleted, fmt.Errorf("delete comment %d: %w", c.ID, err)
		}
		deleted++
	}

	err = r.call(ctx, func(ctx context.Context) error {
		return r.tasks.Delete(ctx, taskID)
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return deleted, fmt.Errorf("delete task: %w", err)
	}
	return deleted, nil
}

func (r *Reconciler) token(ctx context.Context) (string, error) {
	var token string
	err := r.call(ctx, func(ctx context.Context) error {
		var err error
		token, err = r.tokens.ServiceToken(ctx, r.creds.Username, r.creds.Password)
		return err
	})
	return token, err
}

// call runs fn under the per-call timeout.
func (r *Reconciler) call(ctx context.Context, fn func(context.Context) error) error {
	if r.callTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()
	return fn(ctx)
}
