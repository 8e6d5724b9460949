package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestAcademy_Go/internal/character"
	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) GetCharacter(ctx context.Context, userID string) (*domain.CharacterView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterView), args.Error(1)
}

func (m *MockCharacterService) CreateCharacter(ctx context.Context, userID, name string) (*domain.CharacterView, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterView), args.Error(1)
}

func (m *MockCharacterService) AwardExperience(ctx context.Context, userID string, xp int64) (*domain.LevelResult, error) {
	args := m.Called(ctx, userID, xp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LevelResult), args.Error(1)
}

func (m *MockCharacterService) AllocateStats(ctx context.Context, userID string, allocations map[domain.StatName]int) (*domain.CharacterView, error) {
	args := m.Called(ctx, userID, allocations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterView), args.Error(1)
}

func (m *MockCharacterService) Respec(ctx context.Context, userID string) (*domain.RespecResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RespecResult), args.Error(1)
}

func (m *MockCharacterService) SelectSpecialization(ctx context.Context, userID string, spec domain.Specialization) (bool, error) {
	args := m.Called(ctx, userID, spec)
	return args.Bool(0), args.Error(1)
}

func (m *MockCharacterService) EquipItem(ctx context.Context, userID, slot, itemKey string) (*domain.CharacterView, error) {
	args := m.Called(ctx, userID, slot, itemKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterView), args.Error(1)
}

func (m *MockCharacterService) GetRespecSession(ctx context.Context, userID string) character.RespecSession {
	args := m.Called(ctx, userID)
	return args.Get(0).(character.RespecSession)
}

func (m *MockCharacterService) BeginRespec(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCharacterService) ConfirmRespec(ctx context.Context, userID string) (*domain.RespecResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RespecResult), args.Error(1)
}

func (m *MockCharacterService) Redistribute(ctx context.Context, userID string, allocations map[domain.StatName]int) (*domain.CharacterView, error) {
	args := m.Called(ctx, userID, allocations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CharacterView), args.Error(1)
}

func (m *MockCharacterService) CancelRespec(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newCharacterRouter(h *CharacterHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/characters", h.HandleCreateCharacter)
	r.Route("/characters/{userID}", func(r chi.Router) {
		r.Get("/", h.HandleGetCharacter)
		r.Post("/allocate", h.HandleAllocateStats)
		r.Get("/respec", h.HandleGetRespecSession)
		r.Post("/respec", h.HandleRespec)
		r.Post("/respec/begin", h.HandleBeginRespec)
		r.Post("/respec/confirm", h.HandleConfirmRespec)
		r.Post("/respec/redistribute", h.HandleRedistribute)
		r.Post("/respec/cancel", h.HandleCancelRespec)
		r.Post("/specialization", h.HandleSelectSpecialization)
		r.Post("/equip", h.HandleEquipItem)
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func testCharacterView() *domain.CharacterView {
	return &domain.CharacterView{
		Character: domain.Character{
			UserID:          "user-1",
			Name:            "Ada",
			Level:           1,
			Stats:           domain.BaseStats(),
			AvailablePoints: 5,
			Equipment:       []domain.EquippedItem{},
		},
		EffectiveStats: domain.BaseStats(),
		XPToNextLevel:  100,
	}
}

func TestHandleCreateCharacter(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("CreateCharacter", mock.Anything, "user-1", "Ada").Return(testCharacterView(), nil)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters",
			CreateCharacterRequest{UserID: "user-1", Name: "Ada"})

		assert.Equal(t, http.StatusCreated, w.Code)
		var view domain.CharacterView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Equal(t, 5, view.AvailablePoints)
		assert.Equal(t, domain.BaseStatValue, view.Stats.Intelligence)
		svc.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("CreateCharacter", mock.Anything, "user-1", "Ada").Return(nil, domain.ErrCharacterExists)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters",
			CreateCharacterRequest{UserID: "user-1", Name: "Ada"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgCharacterExistsError)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		svc := new(MockCharacterService)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters",
			CreateCharacterRequest{UserID: "user-1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "CreateCharacter", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleGetCharacter(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("GetCharacter", mock.Anything, "user-1").Return(testCharacterView(), nil)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodGet, "/characters/user-1", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"xp_to_next_level":100`)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("GetCharacter", mock.Anything, "ghost").Return(nil, domain.ErrCharacterNotFound)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodGet, "/characters/ghost", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Internal error is not leaked", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("GetCharacter", mock.Anything, "user-1").Return(nil, errors.New("pq: relation does not exist"))

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodGet, "/characters/user-1", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "relation")
		assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
	})
}

func TestHandleAllocateStats(t *testing.T) {
	allocations := map[domain.StatName]int{domain.StatIntelligence: 3, domain.StatWisdom: 2}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockCharacterService)
		view := testCharacterView()
		view.Stats.Intelligence = 13
		view.Stats.Wisdom = 12
		view.AvailablePoints = 0
		svc.On("AllocateStats", mock.Anything, "user-1", allocations).Return(view, nil)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/allocate",
			AllocateStatsRequest{Allocations: allocations})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"available_points":0`)
		svc.AssertExpectations(t)
	})

	t.Run("Insufficient Points", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("AllocateStats", mock.Anything, "user-1", allocations).
			Return(nil, fmt.Errorf("%w: need 5, have 2", domain.ErrInsufficientPoints))

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/allocate",
			AllocateStatsRequest{Allocations: allocations})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInsufficientPointsError)
	})

	t.Run("Unknown stat rejected before the service", func(t *testing.T) {
		svc := new(MockCharacterService)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/allocate",
			map[string]interface{}{"allocations": map[string]int{"luck": 1}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "AllocateStats", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleRespecFlow(t *testing.T) {
	t.Run("Begin without token", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("BeginRespec", mock.Anything, "user-1").Return(false, nil)
		svc.On("GetRespecSession", mock.Anything, "user-1").Return(character.RespecSession{UserID: "user-1", State: character.RespecStateIdle})

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/respec/begin", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp BeginRespecResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Started)
		assert.Equal(t, MsgRespecNoToken, resp.Message)
		assert.Equal(t, character.RespecStateIdle, resp.Session.State)
	})

	t.Run("Begin with token", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("BeginRespec", mock.Anything, "user-1").Return(true, nil)
		svc.On("GetRespecSession", mock.Anything, "user-1").Return(character.RespecSession{UserID: "user-1", State: character.RespecStateConfirming})

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/respec/begin", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"state":"confirming"`)
	})

	t.Run("Confirm", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("ConfirmRespec", mock.Anything, "user-1").Return(&domain.RespecResult{Performed: true, InvestedPoints: 10}, nil)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/respec/confirm", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"invested_points":10`)
	})

	t.Run("Confirm out of order", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("ConfirmRespec", mock.Anything, "user-1").Return(nil, domain.ErrRespecSessionNotFound)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/respec/confirm", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Redistribute", func(t *testing.T) {
		svc := new(MockCharacterService)
		allocations := map[domain.StatName]int{domain.StatCreativity: 10}
		svc.On("Redistribute", mock.Anything, "user-1", allocations).Return(testCharacterView(), nil)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/respec/redistribute",
			AllocateStatsRequest{Allocations: allocations})

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Cancel after confirm", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("CancelRespec", mock.Anything, "user-1").
			Return(fmt.Errorf("%w: expected confirming, got redistributing", domain.ErrInvalidRespecState))

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/respec/cancel", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRespecStateError)
	})

	t.Run("Direct respec without token", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("Respec", mock.Anything, "user-1").Return(&domain.RespecResult{Performed: false}, nil)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/respec", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"performed":false`)
	})

	t.Run("Session state", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("GetRespecSession", mock.Anything, "user-1").Return(character.RespecSession{UserID: "user-1", State: character.RespecStateRedistributing, InvestedPoints: 10})

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodGet, "/characters/user-1/respec", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"state":"redistributing"`)
	})
}

func TestHandleSelectSpecialization(t *testing.T) {
	t.Run("Requirements not met", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("SelectSpecialization", mock.Anything, "user-1", domain.SpecializationScholar).Return(false, nil)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/specialization",
			SelectSpecializationRequest{Specialization: domain.SpecializationScholar})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"selected":false`)
	})

	t.Run("Selected", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("SelectSpecialization", mock.Anything, "user-1", domain.SpecializationSage).Return(true, nil)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/specialization",
			SelectSpecializationRequest{Specialization: domain.SpecializationSage})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgSpecializationSelected)
	})
}

func TestHandleEquipItem(t *testing.T) {
	t.Run("Wrong slot", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("EquipItem", mock.Anything, "user-1", "head", "scholars_robe").Return(nil, domain.ErrInvalidEquipmentSlot)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/equip",
			EquipItemRequest{Slot: "head", ItemKey: "scholars_robe"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Item not owned", func(t *testing.T) {
		svc := new(MockCharacterService)
		svc.On("EquipItem", mock.Anything, "user-1", "body", "scholars_robe").Return(nil, domain.ErrInsufficientQuantity)

		w := doJSON(t, newCharacterRouter(NewCharacterHandler(svc)), http.MethodPost, "/characters/user-1/equip",
			EquipItemRequest{Slot: "body", ItemKey: "scholars_robe"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInsufficientItemsErr)
	})
}
