package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/QuestAcademy_Go/internal/logger"
)

// ValidationErrorResponse lists the offending fields of a rejected request body
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes the JSON body into req and runs its validate tags.
// On failure the 400 response is already written and the caller just returns.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, action string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		msg := ErrMsgInvalidRequest
		if errors.Is(err, io.EOF) {
			msg = ErrMsgEmptyRequestBody
		}
		log.Warn("Rejected request body", "action", action, "error", err)
		respondError(w, http.StatusBadRequest, msg)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		fields := FormatValidationError(err)
		log.Warn("Request failed validation", "action", action, "fields", fields)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fields,
		})
		return err
	}

	log.Debug("Request accepted", "action", action)
	return nil
}

// GetQueryParam returns a required query parameter, answering 400 when it is absent
func GetQueryParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	return requireParam(r, w, name, r.URL.Query().Get(name), ErrMsgMissingQueryParam)
}

// GetPathParam returns a required chi URL parameter, answering 400 when it is absent
func GetPathParam(r *http.Request, w http.ResponseWriter, name string) (string, bool) {
	return requireParam(r, w, name, chi.URLParam(r, name), ErrMsgMissingPathParam)
}

func requireParam(r *http.Request, w http.ResponseWriter, name, value, format string) (string, bool) {
	if value != "" {
		return value, true
	}
	msg := fmt.Sprintf(format, name)
	logger.FromContext(r.Context()).Warn(msg, "path", r.URL.Path)
	respondError(w, http.StatusBadRequest, msg)
	return "", false
}

// GetOptionalQueryParam returns the query parameter or fallback when it is absent
func GetOptionalQueryParam(r *http.Request, name, fallback string) string {
	if value := r.URL.Query().Get(name); value != "" {
		return value
	}
	return fallback
}

// LogRequestFields logs key/value pairs describing the request at debug level
func LogRequestFields(log *slog.Logger, keyvals ...interface{}) {
	log.Debug("Request details", keyvals...)
}
