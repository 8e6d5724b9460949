package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/worker"
)

// cronLogger adapts slog to the cron.Logger interface
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}

// Scheduler enqueues jobs onto the worker pool on cron schedules
type Scheduler struct {
	workerPool *worker.Pool
	cron       *cron.Cron
}

// Parser accepts standard five-field specs and descriptors such as @hourly or @every 1m
var Parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	log := cronLogger{log: slog.Default().With("component", "scheduler")}
	return &Scheduler{
		workerPool: pool,
		cron: cron.New(
			cron.WithParser(Parser),
			cron.WithLogger(log),
			cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
		),
	}
}

// Schedule registers a job to be enqueued whenever spec fires.
// A full worker queue skips that tick rather than blocking the scheduler.
func (s *Scheduler) Schedule(spec string, name string, job worker.Job) (cron.EntryID, error) {
	job = worker.Named(name, job)
	id, err := s.cron.AddFunc(spec, func() {
		if !s.workerPool.TryEnqueue(job) {
			logger.Warn(LogMsgScheduledJobSkipped, "job", name)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", ErrMsgInvalidSchedule, spec, err)
	}

	logger.Info(LogMsgJobScheduled, "job", name, "schedule", spec)
	return id, nil
}

// Start starts the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron loop and waits for running triggers to return
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// ValidateSchedule reports whether spec parses
func ValidateSchedule(spec string) error {
	if _, err := Parser.Parse(spec); err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgInvalidSchedule, spec, err)
	}
	return nil
}
