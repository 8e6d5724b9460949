package world

// RecommendCompletionThreshold is the completion below which an unlocked world is still recommended
const RecommendCompletionThreshold = 80

// Favorite rating bounds
const (
	MinFavoriteRating = 1
	MaxFavoriteRating = 5
)

// Error messages
const (
	ErrMsgGetCharacterFailed     = "failed to get character"
	ErrMsgGetSubjectProgressFail = "failed to get subject progress"
	ErrMsgGetWorldProgressFailed = "failed to get world progress"
	ErrMsgUnlockWorldFailed      = "failed to unlock world"
	ErrMsgUpdateWorldFailed      = "failed to update world progress"
	ErrMsgGetQuestsFailed        = "failed to get world quests"
)

// Log messages
const (
	LogMsgWorldUnlocked          = "World unlocked"
	LogMsgWorldAlreadyUnlocked   = "World already unlocked"
	LogMsgWorldRequirementsUnmet = "World unlock requirements not met"
	LogMsgWorldProgressUpdated   = "World progress updated"
	LogMsgWorldQuestsUnavailable = "World quests unavailable, returning empty list"
	LogMsgQuestsCompletedClamped = "Quests completed clamped to total"
	LogMsgQuestTotalSynced       = "World quest total synced"
)
