package domain

import "time"

// UnlockRequirements gate access to a world
type UnlockRequirements struct {
	MinimumLevel      int   `json:"minimum_level"`
	RequiredSubjectXP int64 `json:"required_subject_xp"`
}

// WorldTheme carries presentation metadata for a world
type WorldTheme struct {
	Color      string `json:"color"`
	Icon       string `json:"icon"`
	Background string `json:"background"`
}

// World is a static catalogue entry
type World struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	SubjectID    string             `json:"subject_id"`
	Theme        WorldTheme         `json:"theme"`
	Requirements UnlockRequirements `json:"unlock_requirements"`
}

// WorldProgress is the per-user record created when a world is unlocked
type WorldProgress struct {
	UserID               string    `json:"user_id"`
	WorldID              string    `json:"world_id"`
	UnlockedAt           time.Time `json:"unlocked_at"`
	QuestsCompleted      int       `json:"quests_completed"`
	TotalQuests          int       `json:"total_quests"`
	TimeSpent            int64     `json:"time_spent"` // seconds
	LastVisited          time.Time `json:"last_visited"`
	FavoriteRating       *int      `json:"favorite_rating,omitempty"`
	CompletionPercentage int       `json:"completion_percentage"`
}

// WorldProgressUpdate lists the optional fields of a progress update
type WorldProgressUpdate struct {
	TimeSpent       *int64
	QuestsCompleted *int
	FavoriteRating  *int
}

// WorldView combines a catalogue world with the user's state
type WorldView struct {
	World
	IsUnlocked           bool           `json:"is_unlocked"`
	CompletionPercentage int            `json:"completion_percentage"`
	Progress             *WorldProgress `json:"progress,omitempty"`
}

// Quest is a unit of content inside a world
type Quest struct {
	ID        int    `json:"id"`
	WorldID   string `json:"world_id"`
	Title     string `json:"title"`
	SortOrder int    `json:"sort_order"`
	XPReward  int    `json:"xp_reward"`
}
