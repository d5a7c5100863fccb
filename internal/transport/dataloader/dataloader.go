// Package dataloader provides per-request loaders that batch the category
// lookups of a task listing into one SQL call.
package dataloader

import (
	"context"
	"net/http"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/todolist-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type categorySource interface {
	CategoriesByTaskIDs(ctx context.Context, taskIDs []string) (map[string][]domain.Category, error)
}

// Loaders contains the per-request loaders. Created per request via
// NewLoaders since loaders cache results.
type Loaders struct {
	CategoriesByTaskID *dataloader.Loader[string, []domain.Category]
}

func NewLoaders(categories categorySource) *Loaders {
	return &Loaders{
		CategoriesByTaskID: dataloader.NewBatchedLoader(
			newCategoriesBatchFn(categories),
			dataloader.WithWait[string, []domain.Category](wait),
			dataloader.WithBatchCapacity[string, []domain.Category](maxBatch),
		),
	}
}

func newCategoriesBatchFn(src categorySource) dataloader.BatchFunc[string, []domain.Category] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[[]domain.Category] {
		grouped, err := src.CategoriesByTaskIDs(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[[]domain.Category], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[[]domain.Category]{Error: err}
			}
			return results
		}

		results := make([]*dataloader.Result[[]domain.Category], len(keys))
		for i, key := range keys {
			cats, ok := grouped[key]
			if !ok {
				cats = []domain.Category{}
			}
			results[i] = &dataloader.Result[[]domain.Category]{Data: cats}
		}
		return results
	}
}

// AttachCategories fills Categories of every task through the loader in ctx,
// one batched lookup for the whole slice.
func AttachCategories(ctx context.Context, tasks []domain.Task) error {
	l := FromContext(ctx)
	if l == nil || len(tasks) == 0 {
		return nil
	}

	keys := make([]string, len(tasks))
	for i := range tasks {
		keys[i] = tasks[i].ID
	}

	cats, errs := l.CategoriesByTaskID.LoadMany(ctx, keys)()
	for i := range tasks {
		if i < len(errs) && errs[i] != nil {
			return errs[i]
		}
		tasks[i].Categories = cats[i]
	}
	return nil
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context or nil.
func FromContext(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// Middleware instantiates per-request loaders and stores them in the
// request context.
func Middleware(categories categorySource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(categories))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
