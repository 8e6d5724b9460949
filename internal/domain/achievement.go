package domain

import "time"

// CriteriaType is the discriminator of an achievement's unlock criteria
type CriteriaType string

const (
	CriteriaLessonsCompleted      CriteriaType = "lessons_completed"
	CriteriaSubjectCorrectAnswers CriteriaType = "subject_correct_answers"
	CriteriaSubjectLessons        CriteriaType = "subject_lessons"
	CriteriaFastAnswers           CriteriaType = "fast_answers"
	CriteriaAccuracyStreak        CriteriaType = "accuracy_streak"
	CriteriaDailyStreak           CriteriaType = "daily_streak"
	CriteriaCharacterLevel        CriteriaType = "character_level"
)

// UnlockCriteria is the tagged predicate stored with each achievement.
// Only the fields relevant to Type are populated.
type UnlockCriteria struct {
	Type      CriteriaType `json:"type"`
	Count     int          `json:"count,omitempty"`
	Subject   string       `json:"subject,omitempty"`
	TimeLimit float64      `json:"time_limit,omitempty"`
	Accuracy  float64      `json:"accuracy,omitempty"`
	Level     int          `json:"level,omitempty"`
}

// Achievement rarities
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Achievement is a catalogue entry
type Achievement struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Criteria    UnlockCriteria `json:"unlock_criteria"`
	Rarity      string         `json:"rarity"`
	Category    string         `json:"category"`
}

// UserAchievement records that a user unlocked an achievement
type UserAchievement struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// UserAchievementView is a catalogue entry annotated with the user's unlock state
type UserAchievementView struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// ActivitySnapshot is the read-only data an achievement check evaluates against
type ActivitySnapshot struct {
	Progress  []SubjectProgress
	Responses []QuestionResponse
	Character *Character
}
