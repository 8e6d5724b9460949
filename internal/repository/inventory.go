package repository

import (
	"context"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// Inventory defines the data access interface for the item catalogue and user inventories
type Inventory interface {
	GetItemByKey(ctx context.Context, itemKey string) (*domain.InventoryItem, error)
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	GetQuantity(ctx context.Context, userID string, itemID int) (int, error)
	AddItem(ctx context.Context, userID string, itemID, quantity int) error
	// ConsumeItem returns false, nil when the user owns fewer than quantity
	ConsumeItem(ctx context.Context, userID string, itemID, quantity int) (bool, error)
}
