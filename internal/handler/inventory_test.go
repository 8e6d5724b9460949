package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockInventoryService) AddItem(ctx context.Context, userID, itemKey string, quantity int) error {
	args := m.Called(ctx, userID, itemKey, quantity)
	return args.Error(0)
}

func (m *MockInventoryService) ConsumeItem(ctx context.Context, userID, itemKey string, quantity int) (bool, error) {
	args := m.Called(ctx, userID, itemKey, quantity)
	return args.Bool(0), args.Error(1)
}

func TestHandleGetInventory(t *testing.T) {
	svc := new(MockInventoryService)
	svc.On("GetInventory", mock.Anything, "user-1").Return([]domain.InventoryEntry{
		{UserID: "user-1", Item: domain.InventoryItem{Key: domain.ItemKeyRespecToken}, Quantity: 2},
	}, nil)

	w := doJSON(t, http.HandlerFunc(NewInventoryHandler(svc).HandleGetInventory), http.MethodGet, "/inventory?user_id=user-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":2`)
}

func TestHandleAddItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("AddItem", mock.Anything, "user-1", domain.ItemKeyRespecToken, 1).Return(nil)

		w := doJSON(t, http.HandlerFunc(NewInventoryHandler(svc).HandleAddItem), http.MethodPost, "/inventory/add",
			AddItemRequest{UserID: "user-1", ItemKey: domain.ItemKeyRespecToken, Quantity: 1})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgItemAddedSuccess)
	})

	t.Run("Unknown item", func(t *testing.T) {
		svc := new(MockInventoryService)
		svc.On("AddItem", mock.Anything, "user-1", "mystery", 1).Return(domain.ErrItemNotFound)

		w := doJSON(t, http.HandlerFunc(NewInventoryHandler(svc).HandleAddItem), http.MethodPost, "/inventory/add",
			AddItemRequest{UserID: "user-1", ItemKey: "mystery", Quantity: 1})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		svc := new(MockInventoryService)

		w := doJSON(t, http.HandlerFunc(NewInventoryHandler(svc).HandleAddItem), http.MethodPost, "/inventory/add", "not an object")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
