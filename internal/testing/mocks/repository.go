// Package mocks provides testify mocks for the repository interfaces and the event publisher.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
)

// CharacterRepository mocks repository.Character
type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) GetCharacter(ctx context.Context, userID string) (*domain.Character, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *CharacterRepository) CreateCharacter(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *CharacterRepository) UpdateCharacter(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *CharacterRepository) EquipItem(ctx context.Context, characterID string, item domain.EquippedItem) error {
	args := m.Called(ctx, characterID, item)
	return args.Error(0)
}

// ProgressRepository mocks repository.Progress
type ProgressRepository struct {
	mock.Mock
}

func (m *ProgressRepository) GetSubjectProgress(ctx context.Context, userID string) ([]domain.SubjectProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SubjectProgress), args.Error(1)
}

func (m *ProgressRepository) RecordResponse(ctx context.Context, response *domain.QuestionResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *ProgressRepository) GetResponses(ctx context.Context, userID string) ([]domain.QuestionResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionResponse), args.Error(1)
}

func (m *ProgressRepository) GetActiveUsersSince(ctx context.Context, since time.Time) ([]string, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *ProgressRepository) BeginTx(ctx context.Context) (repository.ProgressTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ProgressTx), args.Error(1)
}

// ProgressTx mocks repository.ProgressTx
type ProgressTx struct {
	mock.Mock
}

func (m *ProgressTx) GetSubjectProgressForUpdate(ctx context.Context, userID, subjectID, subjectName string) (*domain.SubjectProgress, error) {
	args := m.Called(ctx, userID, subjectID, subjectName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubjectProgress), args.Error(1)
}

func (m *ProgressTx) UpdateSubjectProgress(ctx context.Context, progress *domain.SubjectProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *ProgressTx) RecordResponse(ctx context.Context, response *domain.QuestionResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

func (m *ProgressTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *ProgressTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// WorldRepository mocks repository.World
type WorldRepository struct {
	mock.Mock
}

func (m *WorldRepository) GetWorldProgress(ctx context.Context, userID string) ([]domain.WorldProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorldProgress), args.Error(1)
}

func (m *WorldRepository) GetWorldProgressByID(ctx context.Context, userID, worldID string) (*domain.WorldProgress, error) {
	args := m.Called(ctx, userID, worldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorldProgress), args.Error(1)
}

func (m *WorldRepository) InsertWorldProgress(ctx context.Context, progress *domain.WorldProgress) (bool, error) {
	args := m.Called(ctx, progress)
	return args.Bool(0), args.Error(1)
}

func (m *WorldRepository) UpsertWorldProgress(ctx context.Context, progress *domain.WorldProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *WorldRepository) GetWorldQuests(ctx context.Context, worldID string) ([]domain.Quest, error) {
	args := m.Called(ctx, worldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

// AchievementRepository mocks repository.Achievement
type AchievementRepository struct {
	mock.Mock
}

func (m *AchievementRepository) GetAchievementCatalogue(ctx context.Context) ([]domain.Achievement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *AchievementRepository) GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserAchievement), args.Error(1)
}

func (m *AchievementRepository) InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, error) {
	args := m.Called(ctx, award)
	return args.Bool(0), args.Error(1)
}

// InventoryRepository mocks repository.Inventory
type InventoryRepository struct {
	mock.Mock
}

func (m *InventoryRepository) GetItemByKey(ctx context.Context, itemKey string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, itemKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *InventoryRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *InventoryRepository) GetQuantity(ctx context.Context, userID string, itemID int) (int, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Int(0), args.Error(1)
}

func (m *InventoryRepository) AddItem(ctx context.Context, userID string, itemID, quantity int) error {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Error(0)
}

func (m *InventoryRepository) ConsumeItem(ctx context.Context, userID string, itemID, quantity int) (bool, error) {
	args := m.Called(ctx, userID, itemID, quantity)
	return args.Bool(0), args.Error(1)
}
