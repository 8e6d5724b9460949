package handler

import (
	"net/http"

	"github.com/osse101/QuestAcademy_Go/internal/achievement"
	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
	"github.com/osse101/QuestAcademy_Go/internal/metrics"
)

// AchievementHandler serves the achievement catalogue and on-demand checks
type AchievementHandler struct {
	service achievement.Service
}

func NewAchievementHandler(service achievement.Service) *AchievementHandler {
	return &AchievementHandler{service: service}
}

type CheckAchievementsRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

type CheckAchievementsResponse struct {
	UserID  string               `json:"user_id"`
	Awarded []domain.Achievement `json:"awarded"`
}

// HandleGetCatalogue lists every achievement
// @Summary List achievements
// @Tags achievements
// @Produce json
// @Success 200 {array} domain.Achievement
// @Failure 500 {object} ErrorResponse
// @Router /achievements [get]
func (h *AchievementHandler) HandleGetCatalogue(w http.ResponseWriter, r *http.Request) {
	catalogue, err := h.service.GetCatalogue(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgGetCatalogueFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, catalogue)
}

// HandleGetUserAchievements lists the catalogue with the user's unlock state
// @Summary List user achievements
// @Tags achievements
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.UserAchievementView
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /achievements/user [get]
func (h *AchievementHandler) HandleGetUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	views, err := h.service.GetUserAchievements(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetUserAchievementsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// HandleCheckAchievements evaluates the user's achievements immediately
// @Summary Check achievements
// @Description Awards every achievement whose criteria are now met and returns the new ones
// @Tags achievements
// @Accept json
// @Produce json
// @Param request body CheckAchievementsRequest true "User"
// @Success 200 {object} CheckAchievementsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /achievements/check [post]
func (h *AchievementHandler) HandleCheckAchievements(w http.ResponseWriter, r *http.Request) {
	var req CheckAchievementsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Check achievements"); err != nil {
		return
	}

	metrics.AchievementChecks.WithLabelValues(metrics.TriggerAPI).Inc()
	awarded, err := h.service.CheckAndAward(r.Context(), req.UserID)
	if err != nil {
		respondServiceError(w, r, ErrMsgCheckAchievementsFailed, err)
		return
	}

	if len(awarded) > 0 {
		logger.FromContext(r.Context()).Info("Achievements awarded", "user_id", req.UserID, "count", len(awarded))
	}
	respondJSON(w, http.StatusOK, CheckAchievementsResponse{UserID: req.UserID, Awarded: awarded})
}
