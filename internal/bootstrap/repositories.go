package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestAcademy_Go/internal/database/postgres"
	"github.com/osse101/QuestAcademy_Go/internal/eventlog"
	"github.com/osse101/QuestAcademy_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Character   repository.Character
	Progress    repository.Progress
	World       repository.World
	Achievement repository.Achievement
	Inventory   repository.Inventory
	EventLog    eventlog.Repository
}

// InitializeRepositories creates the PostgreSQL repositories over a shared pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Character:   postgres.NewCharacterRepository(dbPool),
		Progress:    postgres.NewProgressRepository(dbPool),
		World:       postgres.NewWorldRepository(dbPool),
		Achievement: postgres.NewAchievementRepository(dbPool),
		Inventory:   postgres.NewInventoryRepository(dbPool),
		EventLog:    postgres.NewEventLogRepository(dbPool),
	}
}
