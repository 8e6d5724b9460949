package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
)

// Error messages
const (
	ErrMsgGetInventoryFailed = "failed to get inventory"
	ErrMsgGetItemFailed      = "failed to get item"
	ErrMsgAddItemFailed      = "failed to add item"
	ErrMsgConsumeItemFailed  = "failed to consume item"
)

// Service manages user inventories. Quantities never go below zero.
type Service interface {
	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	AddItem(ctx context.Context, userID, itemKey string, quantity int) error
	ConsumeItem(ctx context.Context, userID, itemKey string, quantity int) (bool, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

func (s *service) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	entries, err := s.repo.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetInventoryFailed, err)
	}
	if entries == nil {
		entries = []domain.InventoryEntry{}
	}
	return entries, nil
}

func (s *service) AddItem(ctx context.Context, userID, itemKey string, quantity int) error {
	if userID == "" || quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	item, err := s.getItem(ctx, itemKey)
	if err != nil {
		return err
	}

	if err := s.repo.AddItem(ctx, userID, item.ID, quantity); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgAddItemFailed, err)
	}

	logger.FromContext(ctx).Info("Item added to inventory", "user_id", userID, "item", itemKey, "quantity", quantity)
	return nil
}

// ConsumeItem returns false when the user owns fewer than quantity
func (s *service) ConsumeItem(ctx context.Context, userID, itemKey string, quantity int) (bool, error) {
	if userID == "" || quantity <= 0 {
		return false, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	item, err := s.getItem(ctx, itemKey)
	if err != nil {
		return false, err
	}

	consumed, err := s.repo.ConsumeItem(ctx, userID, item.ID, quantity)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgConsumeItemFailed, err)
	}
	return consumed, nil
}

func (s *service) getItem(ctx context.Context, itemKey string) (*domain.InventoryItem, error) {
	item, err := s.repo.GetItemByKey(ctx, itemKey)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetItemFailed, err)
	}
	return item, nil
}
