package event

import (
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

const (
	AnswerRecorded      Type = domain.EventTypeAnswerRecorded
	CharacterLevelUp    Type = domain.EventTypeCharacterLevelUp
	WorldUnlocked       Type = domain.EventTypeWorldUnlocked
	AchievementUnlocked Type = domain.EventTypeAchievementUnlocked
	CharacterRespec     Type = domain.EventTypeCharacterRespec
)

type AnswerRecordedPayloadV1 struct {
	UserID    string `json:"user_id"`
	SubjectID string `json:"subject_id"`
	Correct   bool   `json:"correct"`
	XPGained  int64  `json:"xp_gained"`
}

// CharacterLevelUpPayloadV1 may span several levels when one answer grants a lot of XP
type CharacterLevelUpPayloadV1 struct {
	UserID       string `json:"user_id"`
	OldLevel     int    `json:"old_level"`
	NewLevel     int    `json:"new_level"`
	PointsGained int    `json:"points_gained"`
}

type WorldUnlockedPayloadV1 struct {
	UserID  string `json:"user_id"`
	WorldID string `json:"world_id"`
}

type AchievementUnlockedPayloadV1 struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Rarity        string `json:"rarity"`
}

// CharacterRespecPayloadV1 records how many points were returned to the pool
type CharacterRespecPayloadV1 struct {
	UserID         string `json:"user_id"`
	InvestedPoints int    `json:"invested_points"`
}

// MetadataKeyRarity tags achievement events so feeds can style them without decoding the payload
const MetadataKeyRarity = "rarity"

var now = time.Now

func newEvent(t Type, payload any) Event {
	return Event{
		Version:    EventSchemaVersion,
		Type:       t,
		OccurredAt: now().UTC(),
		Payload:    payload,
	}
}

func NewAnswerRecordedEvent(userID, subjectID string, correct bool, xpGained int64) Event {
	return newEvent(AnswerRecorded, AnswerRecordedPayloadV1{
		UserID:    userID,
		SubjectID: subjectID,
		Correct:   correct,
		XPGained:  xpGained,
	})
}

func NewCharacterLevelUpEvent(userID string, oldLevel, newLevel, pointsGained int) Event {
	return newEvent(CharacterLevelUp, CharacterLevelUpPayloadV1{
		UserID:       userID,
		OldLevel:     oldLevel,
		NewLevel:     newLevel,
		PointsGained: pointsGained,
	})
}

func NewWorldUnlockedEvent(userID, worldID string) Event {
	return newEvent(WorldUnlocked, WorldUnlockedPayloadV1{UserID: userID, WorldID: worldID})
}

func NewAchievementUnlockedEvent(userID, achievementID, rarity string) Event {
	e := newEvent(AchievementUnlocked, AchievementUnlockedPayloadV1{
		UserID:        userID,
		AchievementID: achievementID,
		Rarity:        rarity,
	})
	e.Metadata = map[string]any{MetadataKeyRarity: rarity}
	return e
}

func NewCharacterRespecEvent(userID string, investedPoints int) Event {
	return newEvent(CharacterRespec, CharacterRespecPayloadV1{UserID: userID, InvestedPoints: investedPoints})
}
