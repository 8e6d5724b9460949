package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/QuestAcademy_Go/internal/achievement"
	"github.com/osse101/QuestAcademy_Go/internal/bootstrap"
	"github.com/osse101/QuestAcademy_Go/internal/character"
	"github.com/osse101/QuestAcademy_Go/internal/config"
	"github.com/osse101/QuestAcademy_Go/internal/database"
	"github.com/osse101/QuestAcademy_Go/internal/eventlog"
	"github.com/osse101/QuestAcademy_Go/internal/inventory"
	"github.com/osse101/QuestAcademy_Go/internal/progress"
	"github.com/osse101/QuestAcademy_Go/internal/scheduler"
	"github.com/osse101/QuestAcademy_Go/internal/server"
	"github.com/osse101/QuestAcademy_Go/internal/worker"
	"github.com/osse101/QuestAcademy_Go/internal/world"
	"github.com/osse101/QuestAcademy_Go/migrations"
)

// Worker queue depth per worker
const jobQueuePerWorker = 64

// @title Quest Academy API
// @version 1.0
// @description Progression rules for Quest Academy: world unlocks, achievements and character stats.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := scheduler.ValidateSchedule(cfg.AchievementSweepSchedule); err != nil {
		fatal("Invalid achievement sweep schedule", err)
	}
	if err := scheduler.ValidateSchedule(cfg.EventLogCleanupSchedule); err != nil {
		fatal("Invalid event log cleanup schedule", err)
	}

	for _, w := range cfg.Warnings() {
		slog.Warn("Configuration warning", "warning", w)
	}

	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), database.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
		SlowQuery:       cfg.DBSlowQueryThreshold,
	})
	if err != nil {
		fatal("Failed to connect to database", err)
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(context.Background(), dbPool, migrations.FS); err != nil {
			fatal("Failed to apply migrations", err)
		}
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	events, err := bootstrap.NewEventSystem(cfg)
	if err != nil {
		fatal("Failed to initialize event system", err)
	}

	publisher := events.Publisher
	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerCount*jobQueuePerWorker)
	pool.Start()

	characterService := character.NewService(repos.Character, repos.Inventory, publisher, cfg.RespecSessionTTL)
	inventoryService := inventory.NewService(repos.Inventory)
	progressService := progress.NewService(repos.Progress, characterService, publisher)
	worldService := world.NewService(repos.Character, repos.Progress, repos.World, publisher)
	achievementService := achievement.NewService(repos.Achievement, repos.Progress, repos.Character, publisher, cfg.AchievementCacheTTL)
	eventLogService := eventlog.NewService(repos.EventLog)

	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:           events.Bus,
		AchievementService: achievementService,
		JobQueue:           pool,
		EventLogService:    eventLogService,
	})

	sched := scheduler.New(pool)
	sweeper := achievement.NewSweeper(achievementService, repos.Progress, time.Now())
	if err := bootstrap.ScheduleJobs(cfg, sched, sweeper, eventLogService); err != nil {
		fatal("Failed to schedule background jobs", err)
	}
	sched.Start()

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, dbPool, server.Services{
		Character:   characterService,
		World:       worldService,
		Achievement: achievementService,
		Progress:    progressService,
		Inventory:   inventoryService,
		EventLog:    eventLogService,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server failed", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: publisher,
	})
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
