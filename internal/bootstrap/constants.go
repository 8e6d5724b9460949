package bootstrap

const (
	dirPermission  = 0o755
	filePermission = 0o644
)

// Session log files are named session_<timestamp>.log; the newest
// logRetentionCount are kept besides the one being opened.
const (
	logTimestampFormat = "2006-01-02_15-04-05"
	logNamePattern     = "session_%s.log"
	logExtension       = ".log"
	logRetentionCount  = 9
)

const defaultDeadLetterPath = "logs/event_deadletter.jsonl"

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingApp         = "Starting Quest Academy"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgOldLogNotRemoved    = "Could not remove old session log"

	LogMsgEventSystemReady    = "Event system ready"
	LogMsgSubscribersAttached = "Event subscribers attached"
	LogMsgJobsScheduled       = "Background jobs scheduled"
	LogMsgShutdownStarted     = "Shutting down"
	LogMsgShutdownStep        = "Stopping component"
	LogMsgShutdownStepFailed  = "Component did not stop cleanly"
	LogMsgShutdownComplete    = "Shutdown complete"
)

const (
	ErrMsgLogDir      = "failed to create log directory"
	ErrMsgLogFile     = "failed to open log file"
	ErrMsgEventSystem = "failed to start event publisher"
	ErrMsgScheduleJob = "failed to schedule job"
)
