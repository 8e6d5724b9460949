package scheduler

const (
	ErrMsgInvalidSchedule = "invalid schedule"

	LogMsgJobScheduled        = "Scheduled background job"
	LogMsgScheduledJobSkipped = "Worker queue full, scheduled run skipped"
)
