package eventlog

import (
	"context"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/worker"
)

// NewRetentionJob returns a worker job that drops entries older than retention.
// Failures are left to the worker pool to log.
func NewRetentionJob(svc Service, retention time.Duration) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		pruned, err := svc.Prune(ctx, retention)
		if err != nil {
			return err
		}
		logger.FromContext(ctx).Info(LogMsgRetentionCompleted, "job", RetentionJobName, "pruned", pruned, "retention", retention)
		return nil
	})
}
