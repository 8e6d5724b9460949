package worker

import "time"

// DefaultJobTimeout bounds a single job execution
const DefaultJobTimeout = 30 * time.Second

// anonymousJob is logged for jobs not wrapped with Named
const anonymousJob = "anonymous"

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgJobQueueFull      = "Worker queue full, job dropped"
	LogMsgJobDroppedStopped = "Worker pool stopped, job dropped"
	LogMsgQueueDrained      = "Worker drained queued jobs on stop"
)
