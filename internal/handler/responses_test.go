package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"character not found", domain.ErrCharacterNotFound, http.StatusNotFound, ErrMsgCharacterNotFoundError},
		{"wrapped world not found", fmt.Errorf("%w: atlantis", domain.ErrWorldNotFound), http.StatusNotFound, ErrMsgWorldNotFoundError},
		{"item not found", domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{"character exists", domain.ErrCharacterExists, http.StatusConflict, ErrMsgCharacterExistsError},
		{"world locked", domain.ErrWorldLocked, http.StatusForbidden, ErrMsgWorldLockedError},
		{"insufficient points", fmt.Errorf("allocate: %w", domain.ErrInsufficientPoints), http.StatusBadRequest, ErrMsgInsufficientPointsError},
		{"invalid stat", domain.ErrInvalidStat, http.StatusBadRequest, ErrMsgInvalidStatError},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidRequestError},
		{"respec state", domain.ErrInvalidRespecState, http.StatusConflict, ErrMsgInvalidRespecStateError},
		{"no session", domain.ErrRespecSessionNotFound, http.StatusConflict, ErrMsgRespecSessionNotFoundError},
		{"database", domain.ErrDatabaseError, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"unknown error", errors.New("dial tcp 10.0.0.1:5432: connection refused"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
