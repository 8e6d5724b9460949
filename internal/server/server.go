package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/QuestAcademy_Go/internal/achievement"
	"github.com/osse101/QuestAcademy_Go/internal/character"
	"github.com/osse101/QuestAcademy_Go/internal/database"
	"github.com/osse101/QuestAcademy_Go/internal/eventlog"
	"github.com/osse101/QuestAcademy_Go/internal/handler"
	"github.com/osse101/QuestAcademy_Go/internal/inventory"
	"github.com/osse101/QuestAcademy_Go/internal/metrics"
	"github.com/osse101/QuestAcademy_Go/internal/progress"
	"github.com/osse101/QuestAcademy_Go/internal/world"
)

type Server struct {
	httpServer *http.Server
}

// Options carries the listener and auth settings
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
}

// Services are the domain services routed by the API. A nil service leaves
// its routes registered; calls to them are a wiring bug.
type Services struct {
	Character   character.Service
	World       world.Service
	Achievement achievement.Service
	Progress    progress.Service
	Inventory   inventory.Service
	EventLog    eventlog.Service
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, svc),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// NewRouter builds the middleware stack and every route
func NewRouter(opts Options, dbPool database.Pool, svc Services) http.Handler {
	r := chi.NewRouter()

	guard := NewClientGuard(opts.TrustedProxies)

	r.Use(SecureHeaders)
	r.Use(requestLogger)
	r.Use(RequireAPIKey(opts.APIKey, guard))
	r.Use(RateLimit(guard))
	r.Use(LimitBody(maxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		mountCharacters(r, handler.NewCharacterHandler(svc.Character))

		worlds := handler.NewWorldHandler(svc.World)
		r.Route("/worlds", func(r chi.Router) {
			r.Get("/", worlds.HandleListWorlds)
			r.Get("/recommend", worlds.HandleRecommendWorld)
			r.Post("/unlock", worlds.HandleUnlockWorld)
			r.Post("/progress", worlds.HandleUpdateWorldProgress)
			r.Get("/{worldID}/quests", worlds.HandleGetWorldQuests)
		})

		achievements := handler.NewAchievementHandler(svc.Achievement)
		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", achievements.HandleGetCatalogue)
			r.Get("/user", achievements.HandleGetUserAchievements)
			r.Post("/check", achievements.HandleCheckAchievements)
		})

		answers := handler.NewProgressHandler(svc.Progress)
		r.Post("/progress/answer", answers.HandleRecordAnswer)
		r.Get("/progress/subjects", answers.HandleGetSubjectProgress)

		items := handler.NewInventoryHandler(svc.Inventory)
		r.Get("/inventory", items.HandleGetInventory)
		r.Post("/inventory/add", items.HandleAddItem)

		r.Get("/activity", handler.NewActivityHandler(svc.EventLog).HandleGetActivity)

		r.Post("/admin/worlds/sync-quests", worlds.HandleSyncQuestTotal)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

func mountCharacters(r chi.Router, h *handler.CharacterHandler) {
	r.Post("/characters", h.HandleCreateCharacter)
	r.Route("/characters/{userID}", func(r chi.Router) {
		r.Get("/", h.HandleGetCharacter)
		r.Post("/allocate", h.HandleAllocateStats)
		r.Post("/specialization", h.HandleSelectSpecialization)
		r.Post("/equip", h.HandleEquipItem)

		r.Get("/respec", h.HandleGetRespecSession)
		r.Post("/respec", h.HandleRespec)
		r.Post("/respec/begin", h.HandleBeginRespec)
		r.Post("/respec/confirm", h.HandleConfirmRespec)
		r.Post("/respec/redistribute", h.HandleRedistribute)
		r.Post("/respec/cancel", h.HandleCancelRespec)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
