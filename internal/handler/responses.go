package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

var responseBuffers = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// respondJSON encodes payload before touching the response, so an encoding
// failure still produces a clean 500 instead of a truncated body
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := responseBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer responseBuffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Character messages
	ErrMsgCharacterNotFoundError     = "Character not found"
	ErrMsgCharacterExistsError       = "You already have a character"
	ErrMsgInsufficientPointsError    = "Not enough stat points"
	ErrMsgInvalidStatError           = "Unknown stat"
	ErrMsgInvalidSpecializationError = "Specialization requirements not met"
	ErrMsgInvalidRespecStateError    = "That respec step is not available right now"
	ErrMsgRespecSessionNotFoundError = "No respec in progress"
	ErrMsgInvalidEquipmentSlotError  = "That item does not fit in this slot"

	// World messages
	ErrMsgWorldNotFoundError = "World not found"
	ErrMsgWorldLockedError   = "That world is still locked"

	// Inventory messages
	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgInsufficientItemsErr = "Not enough items"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrWorldNotFound):
		return http.StatusNotFound, ErrMsgWorldNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrCharacterExists):
		return http.StatusConflict, ErrMsgCharacterExistsError
	case errors.Is(err, domain.ErrWorldLocked):
		return http.StatusForbidden, ErrMsgWorldLockedError
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusBadRequest, ErrMsgInsufficientPointsError
	case errors.Is(err, domain.ErrInvalidStat):
		return http.StatusBadRequest, ErrMsgInvalidStatError
	case errors.Is(err, domain.ErrInvalidSpecialization):
		return http.StatusBadRequest, ErrMsgInvalidSpecializationError
	case errors.Is(err, domain.ErrInvalidEquipmentSlot):
		return http.StatusBadRequest, ErrMsgInvalidEquipmentSlotError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientItemsErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrInvalidRespecState):
		return http.StatusConflict, ErrMsgInvalidRespecStateError
	case errors.Is(err, domain.ErrRespecSessionNotFound):
		return http.StatusConflict, ErrMsgRespecSessionNotFoundError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// Internal details never reach the client
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a service failure and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}
