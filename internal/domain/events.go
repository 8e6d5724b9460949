package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "world.unlocked")
const (
	// EventTypeAnswerRecorded is published after a question response is stored
	EventTypeAnswerRecorded = "progress.answer_recorded"

	// EventTypeCharacterLevelUp is published when a character gains one or more levels
	EventTypeCharacterLevelUp = "character.level_up"

	// EventTypeWorldUnlocked is published when a world progress row is first created
	EventTypeWorldUnlocked = "world.unlocked"

	// EventTypeAchievementUnlocked is published for every newly awarded achievement
	EventTypeAchievementUnlocked = "achievement.unlocked"

	// EventTypeCharacterRespec is published after a respec resets a character's stats
	EventTypeCharacterRespec = "character.respec"
)
