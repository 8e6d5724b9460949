package handler

import (
	"net/http"

	"github.com/osse101/QuestAcademy_Go/internal/character"
	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// CharacterHandler serves character creation, stat allocation and the respec flow
type CharacterHandler struct {
	service character.Service
}

func NewCharacterHandler(service character.Service) *CharacterHandler {
	return &CharacterHandler{service: service}
}

type CreateCharacterRequest struct {
	UserID string `json:"user_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Name   string `json:"name" validate:"required,max=32,excludesall=\x00\n\r\t"`
}

// AllocateStatsRequest maps stat names to the points spent on them
type AllocateStatsRequest struct {
	Allocations map[domain.StatName]int `json:"allocations" validate:"required,min=1,dive,keys,stat,endkeys,gte=0"`
}

type SelectSpecializationRequest struct {
	Specialization domain.Specialization `json:"specialization" validate:"required,specialization"`
}

type SelectSpecializationResponse struct {
	Selected       bool                  `json:"selected"`
	Specialization domain.Specialization `json:"specialization"`
	Message        string                `json:"message,omitempty"`
}

type EquipItemRequest struct {
	Slot    string `json:"slot" validate:"required,max=32"`
	ItemKey string `json:"item_key" validate:"required,max=100"`
}

type BeginRespecResponse struct {
	Started bool                    `json:"started"`
	Session character.RespecSession `json:"session"`
	Message string                  `json:"message,omitempty"`
}

// HandleCreateCharacter creates a level 1 character
// @Summary Create character
// @Description Create the user's character with base stats and starting points
// @Tags characters
// @Accept json
// @Produce json
// @Param request body CreateCharacterRequest true "Character details"
// @Success 201 {object} domain.CharacterView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /characters [post]
func (h *CharacterHandler) HandleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req CreateCharacterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
		return
	}

	view, err := h.service.CreateCharacter(r.Context(), req.UserID, req.Name)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateCharacterFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Character created", "user_id", req.UserID)
	respondJSON(w, http.StatusCreated, view)
}

// HandleGetCharacter returns a character with its effective stats
// @Summary Get character
// @Tags characters
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.CharacterView
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /characters/{userID} [get]
func (h *CharacterHandler) HandleGetCharacter(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	view, err := h.service.GetCharacter(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCharacterFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleAllocateStats spends available points
// @Summary Allocate stat points
// @Description Spend available stat points. The whole allocation is rejected if it exceeds the pool.
// @Tags characters
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param request body AllocateStatsRequest true "Points per stat"
// @Success 200 {object} domain.CharacterView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /characters/{userID}/allocate [post]
func (h *CharacterHandler) HandleAllocateStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	var req AllocateStatsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Allocate stats"); err != nil {
		return
	}

	view, err := h.service.AllocateStats(r.Context(), userID, req.Allocations)
	if err != nil {
		respondServiceError(w, r, ErrMsgAllocateStatsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleRespec resets stats in one step, spending a respec token
// @Summary Respec character
// @Tags characters
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.RespecResult
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /characters/{userID}/respec [post]
func (h *CharacterHandler) HandleRespec(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	result, err := h.service.Respec(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgRespecFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleGetRespecSession returns the user's respec flow state
// @Summary Get respec session
// @Tags characters
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} character.RespecSession
// @Router /characters/{userID}/respec [get]
func (h *CharacterHandler) HandleGetRespecSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, h.service.GetRespecSession(r.Context(), userID))
}

// HandleBeginRespec opens a respec session
// @Summary Begin respec
// @Description Starts the confirm step. started is false when the user holds no respec token.
// @Tags characters
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} BeginRespecResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /characters/{userID}/respec/begin [post]
func (h *CharacterHandler) HandleBeginRespec(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	started, err := h.service.BeginRespec(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgRespecFailed, err)
		return
	}

	resp := BeginRespecResponse{
		Started: started,
		Session: h.service.GetRespecSession(r.Context(), userID),
	}
	if !started {
		resp.Message = MsgRespecNoToken
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleConfirmRespec spends the token and resets stats
// @Summary Confirm respec
// @Tags characters
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} domain.RespecResult
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /characters/{userID}/respec/confirm [post]
func (h *CharacterHandler) HandleConfirmRespec(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	result, err := h.service.ConfirmRespec(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgRespecFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleRedistribute allocates refunded points during a respec
// @Summary Redistribute respec points
// @Tags characters
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param request body AllocateStatsRequest true "Points per stat"
// @Success 200 {object} domain.CharacterView
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /characters/{userID}/respec/redistribute [post]
func (h *CharacterHandler) HandleRedistribute(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	var req AllocateStatsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Redistribute"); err != nil {
		return
	}

	view, err := h.service.Redistribute(r.Context(), userID, req.Allocations)
	if err != nil {
		respondServiceError(w, r, ErrMsgAllocateStatsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleCancelRespec abandons a respec before the token is spent
// @Summary Cancel respec
// @Tags characters
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /characters/{userID}/respec/cancel [post]
func (h *CharacterHandler) HandleCancelRespec(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	if err := h.service.CancelRespec(r.Context(), userID); err != nil {
		respondServiceError(w, r, ErrMsgRespecFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRespecCancelled})
}

// HandleSelectSpecialization chooses a specialization
// @Summary Select specialization
// @Description selected is false when the character does not meet the level or primary stat requirement
// @Tags characters
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param request body SelectSpecializationRequest true "Specialization"
// @Success 200 {object} SelectSpecializationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /characters/{userID}/specialization [post]
func (h *CharacterHandler) HandleSelectSpecialization(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	var req SelectSpecializationRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Select specialization"); err != nil {
		return
	}

	selected, err := h.service.SelectSpecialization(r.Context(), userID, req.Specialization)
	if err != nil {
		respondServiceError(w, r, ErrMsgSpecializationFailed, err)
		return
	}

	resp := SelectSpecializationResponse{Selected: selected, Specialization: req.Specialization}
	if selected {
		resp.Message = MsgSpecializationSelected
	} else {
		resp.Message = ErrMsgInvalidSpecializationError
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleEquipItem equips an owned item
// @Summary Equip item
// @Tags characters
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param request body EquipItemRequest true "Slot and item"
// @Success 200 {object} domain.CharacterView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /characters/{userID}/equip [post]
func (h *CharacterHandler) HandleEquipItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	var req EquipItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
		return
	}

	view, err := h.service.EquipItem(r.Context(), userID, req.Slot, req.ItemKey)
	if err != nil {
		respondServiceError(w, r, ErrMsgEquipItemFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}
