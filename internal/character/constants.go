package character

import "time"

// XP curve constants
const (
	// BaseXP is the base XP value used in level calculations
	BaseXP = 100.0

	// LevelExponent is the exponent used in the XP formula: XP = BaseXP * (Level ^ LevelExponent)
	LevelExponent = 1.5

	// MaxIterationLevel is the maximum curve level to iterate to when calculating levels
	MaxIterationLevel = 100
)

// Progression rules
const (
	// StartingLevel is the level of a new character with no experience
	StartingLevel = 1

	// InitialStatPoints are granted on character creation
	InitialStatPoints = 5

	// StatPointsPerLevel are granted for every level gained
	StatPointsPerLevel = 3

	// SpecializationMinLevel is the level a character must reach before choosing a specialization
	SpecializationMinLevel = 10

	// SpecializationMinPrimaryStat is the primary stat value required for a specialization
	SpecializationMinPrimaryStat = 20

	// SpecializationBonus is added to the primary stat's effective value
	SpecializationBonus = 5

	// MaxNameLength bounds character names
	MaxNameLength = 32
)

// Respec session settings
const (
	respecSessionCacheSize = 10000

	// DefaultRespecSessionTTL applies when the configured TTL is not positive
	DefaultRespecSessionTTL = 15 * time.Minute
)

// Error messages
const (
	ErrMsgGetCharacterFailed    = "failed to get character"
	ErrMsgCreateCharacterFailed = "failed to create character"
	ErrMsgUpdateCharacterFailed = "failed to update character"
	ErrMsgGetItemFailed         = "failed to get item"
	ErrMsgCheckTokenFailed      = "failed to check respec token balance"
	ErrMsgConsumeTokenFailed    = "failed to consume respec token"
	ErrMsgEquipItemFailed       = "failed to equip item"
)

// Log messages
const (
	LogMsgCharacterCreated        = "Character created"
	LogMsgStatsAllocated          = "Stat points allocated"
	LogMsgRespecPerformed         = "Character respec performed"
	LogMsgRespecNoToken           = "Respec requested without a token"
	LogMsgRespecTokenRefunded     = "Respec token refunded after failed update"
	LogMsgRespecTokenRefundFailed = "Failed to refund respec token"
	LogMsgSpecializationSelected  = "Specialization selected"
	LogMsgSpecializationDenied    = "Specialization requirements not met"
	LogMsgItemEquipped            = "Item equipped"
	LogMsgExperienceAwarded       = "Experience awarded"
	LogMsgRespecSessionStarted    = "Respec session started"
	LogMsgRespecSessionCancelled  = "Respec session cancelled"
	LogMsgRespecSessionCompleted  = "Respec session completed"
)
