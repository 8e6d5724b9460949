package achievement

import "time"

// Cache settings
const (
	catalogueCacheKey  = "catalogue"
	catalogueCacheSize = 1

	// DefaultCatalogueTTL applies when the configured TTL is not positive
	DefaultCatalogueTTL = 10 * time.Minute
)

// Worker job names
const (
	SweepJobName = "achievement-sweep"
	CheckJobName = "achievement-check"
)

// Error messages
const (
	ErrMsgGetProgressFailed         = "failed to get subject progress"
	ErrMsgGetResponsesFailed        = "failed to get question responses"
	ErrMsgGetCharacterFailed        = "failed to get character"
	ErrMsgGetCatalogueFailed        = "failed to get achievement catalogue"
	ErrMsgGetUserAchievementsFailed = "failed to get user achievements"
	ErrMsgAwardFailed               = "failed to award achievement"
	ErrMsgGetActiveUsersFailed      = "failed to get active users"
	ErrMsgDecodePayloadFailed       = "failed to decode event payload"
)

// Log messages
const (
	LogMsgAchievementAwarded      = "Achievement awarded"
	LogMsgAchievementAlreadyHeld  = "Achievement already awarded"
	LogMsgAchievementCheckFailed  = "Achievement check failed"
	LogMsgAchievementCheckQueued  = "Achievement check queued"
	LogMsgAchievementCheckDropped = "Achievement check dropped, queue full"
	LogMsgSweepStarted            = "Achievement sweep started"
	LogMsgSweepCompleted          = "Achievement sweep completed"
	LogMsgCatalogueCacheRefreshed = "Achievement catalogue cache refreshed"
)
