package repository

import (
	"context"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// Character defines the data access interface for characters and their equipment
type Character interface {
	GetCharacter(ctx context.Context, userID string) (*domain.Character, error)
	CreateCharacter(ctx context.Context, character *domain.Character) error
	UpdateCharacter(ctx context.Context, character *domain.Character) error
	EquipItem(ctx context.Context, characterID string, item domain.EquippedItem) error
}
