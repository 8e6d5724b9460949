package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/achievement"
	"github.com/osse101/QuestAcademy_Go/internal/config"
	"github.com/osse101/QuestAcademy_Go/internal/eventlog"
	"github.com/osse101/QuestAcademy_Go/internal/scheduler"
)

// ScheduleJobs registers the recurring background jobs
func ScheduleJobs(cfg *config.Config, sched *scheduler.Scheduler, sweeper *achievement.Sweeper, eventLogService eventlog.Service) error {
	if _, err := sched.Schedule(cfg.AchievementSweepSchedule, achievement.SweepJobName, sweeper); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgScheduleJob, achievement.SweepJobName, err)
	}

	retention := eventlog.NewRetentionJob(eventLogService, time.Duration(cfg.EventLogRetentionDays)*24*time.Hour)
	if _, err := sched.Schedule(cfg.EventLogCleanupSchedule, eventlog.RetentionJobName, retention); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgScheduleJob, eventlog.RetentionJobName, err)
	}

	slog.Info(LogMsgJobsScheduled,
		"achievement_sweep", cfg.AchievementSweepSchedule,
		"event_log_cleanup", cfg.EventLogCleanupSchedule,
		"retention_days", cfg.EventLogRetentionDays)
	return nil
}
