package handler

import (
	"net/http"
	"strconv"

	"github.com/osse101/QuestAcademy_Go/internal/eventlog"
)

// ActivityHandler serves the per-user progression event feed
type ActivityHandler struct {
	service eventlog.Service
}

func NewActivityHandler(service eventlog.Service) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// HandleGetActivity pages through a user's progression events
// @Summary Get activity feed
// @Description Level ups, world unlocks, achievements, respecs and answers, newest first
// @Tags activity
// @Produce json
// @Param user_id query string true "User ID"
// @Param type query string false "Event type filter"
// @Param limit query int false "Maximum events (default 50, max 200)"
// @Param before query int false "Cursor from next_cursor of the previous page"
// @Success 200 {object} eventlog.Feed
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /activity [get]
func (h *ActivityHandler) HandleGetActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	q := eventlog.FeedQuery{
		UserID: userID,
		Type:   GetOptionalQueryParam(r, "type", ""),
	}

	if raw := GetOptionalQueryParam(r, "limit", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		q.Limit = n
	}

	if raw := GetOptionalQueryParam(r, "before", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidCursor)
			return
		}
		q.BeforeID = id
	}

	feed, err := h.service.GetUserFeed(r.Context(), q)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetActivityFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}
