package event

import "time"

// EventSchemaVersion is stamped on every event built by the constructors in this package
const EventSchemaVersion = "1.0"

// Retry defaults, used when the publisher is constructed with non-positive values
const (
	RetryQueueBufferSize     = 1000
	RetryInitialDelaySeconds = 2
	RetryMaxAttempts         = 5
)

const (
	DeadLetterFilePermissions = 0644
	DeadLetterDirPermissions  = 0755
)

const (
	LogMsgEventPublishFailed    = "Event publish failed, queued for retry"
	LogMsgRetryQueueFull        = "Retry queue full, dead-lettering event"
	LogMsgDeadLetterWriteFailed = "Failed to write dead-letter entry"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgEventRetryExhausted   = "Event retries exhausted"
	LogMsgEventRetryFailed      = "Event retry failed"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDroppedShutdown  = "Event dropped, no dead-letter writer"
	LogMsgQueueDrainedShutdown  = "Flushed retry queue on shutdown"
	LogMsgShutdownTimeout       = "Timed out waiting for retry worker"
)

const (
	ErrMsgHandlersFailed         = "event handlers failed for"
	ErrMsgDeadLetterOpenFailed   = "failed to open dead-letter file"
	ErrMsgDeadLetterEncodeFailed = "failed to encode dead-letter entry"
	ErrMsgPayloadDecodeFailed    = "failed to decode event payload"
)

// CalculateRetryDelay doubles baseDelay for every attempt after the first
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay << (attempt - 1)
}
