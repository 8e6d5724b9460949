package handler

import (
	"net/http"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/inventory"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// InventoryHandler serves user inventories
type InventoryHandler struct {
	service inventory.Service
}

func NewInventoryHandler(service inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

type AddItemRequest struct {
	UserID   string `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	ItemKey  string `json:"item_key" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleGetInventory lists a user's items
// @Summary Get inventory
// @Tags inventory
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.InventoryEntry
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /inventory [get]
func (h *InventoryHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	entries, err := h.service.GetInventory(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetInventoryFailed, err)
		return
	}
	if entries == nil {
		entries = []domain.InventoryEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// HandleAddItem grants items to a user
// @Summary Add item to inventory
// @Description Add an item to a user's inventory (admin/system action)
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Item details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /inventory/add [post]
func (h *InventoryHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
		return
	}

	LogRequestFields(logger.FromContext(r.Context()), "user_id", req.UserID, "item_key", req.ItemKey, "quantity", req.Quantity)

	if err := h.service.AddItem(r.Context(), req.UserID, req.ItemKey, req.Quantity); err != nil {
		respondServiceError(w, r, ErrMsgAddItemFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemAddedSuccess})
}
