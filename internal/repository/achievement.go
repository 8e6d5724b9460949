package repository

import (
	"context"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// Achievement defines the data access interface for the achievement catalogue and awards
type Achievement interface {
	GetAchievementCatalogue(ctx context.Context) ([]domain.Achievement, error)
	GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error)
	// InsertUserAchievement returns false, nil when the achievement was already awarded
	InsertUserAchievement(ctx context.Context, award *domain.UserAchievement) (bool, error)
}
