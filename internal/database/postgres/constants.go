package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Character Operations
const (
	ErrMsgFailedToGetCharacter    = "failed to get character"
	ErrMsgFailedToCreateCharacter = "failed to create character"
	ErrMsgFailedToUpdateCharacter = "failed to update character"
	ErrMsgFailedToGetEquipment    = "failed to get equipment"
	ErrMsgFailedToEquipItem       = "failed to equip item"
)

// Error Messages - Progress Operations
const (
	ErrMsgFailedToBeginTx               = "failed to begin progress transaction"
	ErrMsgFailedToQuerySubjectProgress  = "failed to query subject progress"
	ErrMsgFailedToLockSubjectProgress   = "failed to lock subject progress"
	ErrMsgFailedToUpdateSubjectProgress = "failed to update subject progress"
	ErrMsgFailedToRecordResponse        = "failed to record response"
	ErrMsgFailedToQueryResponses        = "failed to query responses"
	ErrMsgFailedToQueryActiveUsers      = "failed to query active users"
)

// Error Messages - World Operations
const (
	ErrMsgFailedToQueryWorldProgress  = "failed to query world progress"
	ErrMsgFailedToGetWorldProgress    = "failed to get world progress"
	ErrMsgFailedToInsertWorldProgress = "failed to insert world progress"
	ErrMsgFailedToUpsertWorldProgress = "failed to upsert world progress"
	ErrMsgFailedToQueryWorldQuests    = "failed to query world quests"
)

// Error Messages - Achievement Operations
const (
	ErrMsgFailedToQueryAchievements     = "failed to query achievements"
	ErrMsgFailedToUnmarshalCriteria     = "failed to unmarshal unlock criteria for"
	ErrMsgFailedToQueryUserAchievements = "failed to query user achievements"
	ErrMsgFailedToInsertUserAchievement = "failed to insert user achievement"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetItemByKey    = "failed to get item by key"
	ErrMsgFailedToGetInventory    = "failed to get inventory"
	ErrMsgFailedToUpdateInventory = "failed to update inventory"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToEncodeEvent  = "failed to encode event"
	ErrMsgFailedToInsertEvent  = "failed to insert event"
	ErrMsgFailedToQueryEvents  = "failed to query events"
	ErrMsgFailedToDecodeEvent  = "failed to decode event"
	ErrMsgFailedToDeleteEvents = "failed to prune activity log"
)
