package repository

import (
	"context"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// World defines the data access interface for per-user world progress
type World interface {
	GetWorldProgress(ctx context.Context, userID string) ([]domain.WorldProgress, error)
	// GetWorldProgressByID returns nil, nil when the world has not been unlocked
	GetWorldProgressByID(ctx context.Context, userID, worldID string) (*domain.WorldProgress, error)
	// InsertWorldProgress returns false, nil when the row already exists
	InsertWorldProgress(ctx context.Context, progress *domain.WorldProgress) (bool, error)
	UpsertWorldProgress(ctx context.Context, progress *domain.WorldProgress) error
	GetWorldQuests(ctx context.Context, worldID string) ([]domain.Quest, error)
}
