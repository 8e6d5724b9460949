package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgEmptyRequestBody      = "Request body is required"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgMissingPathParam  = "Missing %s path parameter"

	// Character operation error messages
	ErrMsgGetCharacterFailed    = "Failed to get character"
	ErrMsgCreateCharacterFailed = "Failed to create character"
	ErrMsgAllocateStatsFailed   = "Failed to allocate stats"
	ErrMsgRespecFailed          = "Failed to respec character"
	ErrMsgSpecializationFailed  = "Failed to select specialization"
	ErrMsgEquipItemFailed       = "Failed to equip item"

	// World operation error messages
	ErrMsgListWorldsFailed     = "Failed to list worlds"
	ErrMsgUnlockWorldFailed    = "Failed to unlock world"
	ErrMsgUpdateWorldFailed    = "Failed to update world progress"
	ErrMsgRecommendWorldFailed = "Failed to recommend world"
	ErrMsgGetQuestsFailed      = "Failed to get world quests"
	ErrMsgSyncQuestsFailed     = "Failed to sync world quests"

	// Achievement operation error messages
	ErrMsgGetCatalogueFailed        = "Failed to get achievements"
	ErrMsgGetUserAchievementsFailed = "Failed to get user achievements"
	ErrMsgCheckAchievementsFailed   = "Failed to check achievements"

	// Progress operation error messages
	ErrMsgRecordAnswerFailed     = "Failed to record answer"
	ErrMsgGetSubjectProgressFail = "Failed to get subject progress"

	// Inventory operation error messages
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgAddItemFailed      = "Failed to add item"

	// Activity feed error messages
	ErrMsgGetActivityFailed = "Failed to get activity feed"
	ErrMsgInvalidLimit      = "limit must be a positive integer"
	ErrMsgInvalidCursor     = "before must be a positive activity id"
)

// Success messages for API responses
const (
	MsgItemAddedSuccess        = "Item added successfully"
	MsgRespecCancelled         = "Respec cancelled"
	MsgRespecNoToken           = "A respec token is required"
	MsgSpecializationSelected  = "Specialization selected"
	MsgWorldUnlocked           = "World unlocked"
	MsgWorldRequirementsNotMet = "World requirements not met"
)
