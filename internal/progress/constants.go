package progress

// XP awarded per answered question
const (
	XPCorrectAnswer = 10
	XPAttempt       = 2
)

// Error messages
const (
	ErrMsgBeginTxFailed        = "failed to begin transaction"
	ErrMsgCommitFailed         = "failed to commit answer"
	ErrMsgRecordResponseFailed = "failed to record response"
	ErrMsgGetProgressFailed    = "failed to get subject progress"
	ErrMsgSaveProgressFailed   = "failed to save subject progress"
)

// Log messages
const (
	LogMsgAnswerRecorded         = "Answer recorded"
	LogMsgCharacterXPSkipped     = "No character for user, skipping character XP"
	LogMsgCharacterXPAwardFailed = "Failed to award character XP"
)
