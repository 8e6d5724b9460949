package handler

import (
	"net/http"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/progress"
)

// ProgressHandler records answered questions and reports subject progress
type ProgressHandler struct {
	service progress.Service
}

func NewProgressHandler(service progress.Service) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// RecordAnswerRequest describes one answered question. Either subject_id or subject_name is required.
type RecordAnswerRequest struct {
	UserID       string  `json:"user_id" validate:"required,max=100"`
	SubjectID    string  `json:"subject_id" validate:"required_without=SubjectName,max=100"`
	SubjectName  string  `json:"subject_name" validate:"max=100"`
	QuestionID   string  `json:"question_id" validate:"required,max=100"`
	Correct      bool    `json:"correct"`
	ResponseTime float64 `json:"response_time" validate:"gte=0"`
}

// HandleRecordAnswer records an answer and awards experience
// @Summary Record answer
// @Tags progress
// @Accept json
// @Produce json
// @Param request body RecordAnswerRequest true "Answered question"
// @Success 201 {object} domain.AnswerResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /progress/answer [post]
func (h *ProgressHandler) HandleRecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req RecordAnswerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record answer"); err != nil {
		return
	}

	result, err := h.service.RecordAnswer(r.Context(), domain.AnswerSubmission{
		UserID:       req.UserID,
		SubjectID:    req.SubjectID,
		SubjectName:  req.SubjectName,
		QuestionID:   req.QuestionID,
		Correct:      req.Correct,
		ResponseTime: req.ResponseTime,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgRecordAnswerFailed, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// HandleGetSubjectProgress lists the user's per-subject progress
// @Summary Get subject progress
// @Tags progress
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.SubjectProgress
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /progress/subjects [get]
func (h *ProgressHandler) HandleGetSubjectProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	subjects, err := h.service.GetSubjectProgress(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetSubjectProgressFail, err)
		return
	}
	if subjects == nil {
		subjects = []domain.SubjectProgress{}
	}
	respondJSON(w, http.StatusOK, subjects)
}
