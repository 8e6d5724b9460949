package eventlog

import "github.com/osse101/QuestAcademy_Go/internal/event"

// LoggedEventTypes are the progression events recorded in the activity log
var LoggedEventTypes = []event.Type{
	event.AnswerRecorded,
	event.CharacterLevelUp,
	event.WorldUnlocked,
	event.AchievementUnlocked,
	event.CharacterRespec,
}

// PayloadKeyUserID is the payload field that attributes an event to a user
const PayloadKeyUserID = "user_id"

const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 200
)

// RetentionJobName names the pruning job in the scheduler
const RetentionJobName = "activity-log-retention"

const (
	LogMsgEventPayloadUndecodable = "Skipping event with non-object payload"
	LogMsgFailedToLogEvent        = "Failed to record activity"
	LogMsgEventLogged             = "Activity recorded"
	LogMsgRetentionCompleted      = "Activity log pruned"
)

const (
	ErrMsgAppendFailed    = "failed to record activity"
	ErrMsgGetEventsFailed = "failed to read activity feed"
	ErrMsgPruneFailed     = "failed to prune activity log"
)
