package handler

import (
	"net/http"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/world"
)

// WorldHandler serves the world map
type WorldHandler struct {
	service world.Service
}

func NewWorldHandler(service world.Service) *WorldHandler {
	return &WorldHandler{service: service}
}

type UnlockWorldRequest struct {
	UserID  string `json:"user_id" validate:"required,max=100"`
	WorldID string `json:"world_id" validate:"required,max=100"`
}

type UnlockWorldResponse struct {
	WorldID  string `json:"world_id"`
	Unlocked bool   `json:"unlocked"`
	Message  string `json:"message"`
}

// UpdateWorldProgressRequest carries the fields to change; omitted fields are left as they are
type UpdateWorldProgressRequest struct {
	UserID          string `json:"user_id" validate:"required,max=100"`
	WorldID         string `json:"world_id" validate:"required,max=100"`
	TimeSpent       *int64 `json:"time_spent,omitempty" validate:"omitempty,gte=0"`
	QuestsCompleted *int   `json:"quests_completed,omitempty" validate:"omitempty,gte=0"`
	FavoriteRating  *int   `json:"favorite_rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type RecommendWorldResponse struct {
	WorldID string `json:"world_id"`
}

type SyncQuestsRequest struct {
	UserID  string `json:"user_id" validate:"required,max=100"`
	WorldID string `json:"world_id" validate:"required,max=100"`
}

// HandleListWorlds lists every world with the user's unlock state
// @Summary List worlds
// @Description Unlocked worlds come first, then by minimum level
// @Tags worlds
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.WorldView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /worlds [get]
func (h *WorldHandler) HandleListWorlds(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	views, err := h.service.ListWorlds(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListWorldsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// HandleRecommendWorld suggests the next world to visit
// @Summary Recommend world
// @Description First unlocked world under the completion threshold, else the first locked world, else the least complete one. world_id is empty only when the catalogue is empty.
// @Tags worlds
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} RecommendWorldResponse
// @Failure 404 {object} ErrorResponse
// @Router /worlds/recommend [get]
func (h *WorldHandler) HandleRecommendWorld(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	worldID, err := h.service.RecommendWorld(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgRecommendWorldFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, RecommendWorldResponse{WorldID: worldID})
}

// HandleUnlockWorld unlocks a world when the user meets its requirements
// @Summary Unlock world
// @Tags worlds
// @Accept json
// @Produce json
// @Param request body UnlockWorldRequest true "World to unlock"
// @Success 200 {object} UnlockWorldResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /worlds/unlock [post]
func (h *WorldHandler) HandleUnlockWorld(w http.ResponseWriter, r *http.Request) {
	var req UnlockWorldRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Unlock world"); err != nil {
		return
	}

	unlocked, err := h.service.UnlockWorld(r.Context(), req.UserID, req.WorldID)
	if err != nil {
		respondServiceError(w, r, ErrMsgUnlockWorldFailed, err)
		return
	}

	resp := UnlockWorldResponse{WorldID: req.WorldID, Unlocked: unlocked, Message: MsgWorldUnlocked}
	if !unlocked {
		resp.Message = MsgWorldRequirementsNotMet
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleUpdateWorldProgress records time, quests and rating for an unlocked world
// @Summary Update world progress
// @Tags worlds
// @Accept json
// @Produce json
// @Param request body UpdateWorldProgressRequest true "Progress fields"
// @Success 200 {object} domain.WorldProgress
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /worlds/progress [post]
func (h *WorldHandler) HandleUpdateWorldProgress(w http.ResponseWriter, r *http.Request) {
	var req UpdateWorldProgressRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update world progress"); err != nil {
		return
	}

	progress, err := h.service.UpdateWorldProgress(r.Context(), req.UserID, req.WorldID, domain.WorldProgressUpdate{
		TimeSpent:       req.TimeSpent,
		QuestsCompleted: req.QuestsCompleted,
		FavoriteRating:  req.FavoriteRating,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgUpdateWorldFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// HandleGetWorldQuests lists a world's quests
// @Summary Get world quests
// @Tags worlds
// @Produce json
// @Param worldID path string true "World ID"
// @Success 200 {array} domain.Quest
// @Failure 404 {object} ErrorResponse
// @Router /worlds/{worldID}/quests [get]
func (h *WorldHandler) HandleGetWorldQuests(w http.ResponseWriter, r *http.Request) {
	worldID, ok := GetPathParam(r, w, "worldID")
	if !ok {
		return
	}

	quests, err := h.service.GetWorldQuests(r.Context(), worldID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetQuestsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// HandleSyncQuestTotal refreshes a user's quest total from the world's quest list
// @Summary Sync world quest total
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SyncQuestsRequest true "User and world"
// @Success 200 {object} domain.WorldProgress
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/worlds/sync-quests [post]
func (h *WorldHandler) HandleSyncQuestTotal(w http.ResponseWriter, r *http.Request) {
	var req SyncQuestsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Sync quests"); err != nil {
		return
	}

	progress, err := h.service.SyncQuestTotal(r.Context(), req.UserID, req.WorldID)
	if err != nil {
		respondServiceError(w, r, ErrMsgSyncQuestsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}
