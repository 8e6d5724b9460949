package achievement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/metrics"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
)

// Sweeper re-checks every user who answered a question since the previous sweep.
// It implements worker.Job so it can be run by the scheduler.
type Sweeper struct {
	service  Service
	progress repository.Progress
	now      func() time.Time

	mu        sync.Mutex
	lastSweep time.Time
}

// NewSweeper creates a sweeper whose first run covers activity since startedAt
func NewSweeper(service Service, progress repository.Progress, startedAt time.Time) *Sweeper {
	return &Sweeper{
		service:   service,
		progress:  progress,
		now:       time.Now,
		lastSweep: startedAt,
	}
}

// Process runs one sweep. A failing user does not stop the sweep.
func (s *Sweeper) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sweepStart := s.now()
	users, err := s.progress.GetActiveUsersSince(ctx, s.lastSweep)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgGetActiveUsersFailed, err)
	}

	log.Info(LogMsgSweepStarted, "users", len(users), "since", s.lastSweep)

	awarded, failed := 0, 0
	for _, userID := range users {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.AchievementChecks.WithLabelValues(metrics.TriggerSweep).Inc()
		newly, err := s.service.CheckAndAward(ctx, userID)
		if err != nil {
			failed++
			continue
		}
		awarded += len(newly)
	}

	// Users that failed are retried when they next answer a question
	s.lastSweep = sweepStart
	log.Info(LogMsgSweepCompleted, "users", len(users), "awarded", awarded, "failed", failed)
	return nil
}
