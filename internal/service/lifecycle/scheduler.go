package lifecycle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/todolist-backend/internal/config"
	"github.com/heartmarshall/todolist-backend/internal/domain"
)

type sweeper interface {
	Sweep(ctx context.Context, kind domain.SweepKind) (domain.SweepReport, error)
}

// Schedule is one recurring sweep.
type Schedule struct {
	Kind     domain.SweepKind
	Interval time.Duration
}

// SchedulesFrom returns the enabled schedules of cfg.
func SchedulesFrom(cfg config.LifecycleConfig) []Schedule {
	var out []Schedule
	if cfg.CompletedEnabled {
		out = append(out, Schedule{Kind: domain.SweepCompleted, Interval: cfg.CompletedInterval.Duration()})
	}
	if cfg.OverdueEnabled {
		out = append(out, Schedule{Kind: domain.SweepOverdue, Interval: cfg.OverdueInterval.Duration()})
	}
	return out
}

// Scheduler drives each schedule from its own ticker. A tick that fires
// while the previous sweep of the same kind still runs is skipped.
type Scheduler struct {
	log       *slog.Logger
	sweeper   sweeper
	schedules []Schedule
}

func NewScheduler(log *slog.Logger, s sweeper, schedules []Schedule) *Scheduler {
	return &Scheduler{
		log:       log.With("service", "scheduler"),
		sweeper:   s,
		schedules: schedules,
	}
}

// Run blocks until ctx is cancelled and all in-flight sweeps returned.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.schedules) == 0 {
		s.log.InfoContext(ctx, "no sweeps enabled")
		<-ctx.Done()
		return nil
	}

	var wg sync.WaitGroup
	for _, sc := range s.schedules {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, sc)
		}()
	}
	wg.Wait()
	return nil
}

func (s *Scheduler) loop(ctx context.Context, sc Schedule) {
	log := s.log.With(slog.String("sweep", sc.Kind.String()))
	log.InfoContext(ctx, "schedule started", slog.Duration("interval", sc.Interval))

	ticker := time.NewTicker(sc.Interval)
	defer ticker.Stop()

	var (
		running sync.Mutex
		wg      sync.WaitGroup
	)
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			log.InfoContext(ctx, "schedule stopped")
			return
		case <-ticker.C:
		}

		if !running.TryLock() {
			log.WarnContext(ctx, "previous sweep still running, skipping tick")
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer running.Unlock()
			if _, err := s.sweeper.Sweep(ctx, sc.Kind); err != nil {
				log.ErrorContext(ctx, "sweep failed", slog.String("error", err.Error()))
			}
		}()
	}
}
