package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QuestAcademy_Go/internal/database"
	"github.com/osse101/QuestAcademy_Go/migrations"
)

// testPool is set by TestMain when the postgres container came up
var testPool *pgxpool.Pool

var (
	migrateOnce sync.Once
	migrateErr  error
)

// requireDB skips without a container database and migrates it on first use
func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	if testPool == nil {
		t.Skip("integration test skipped: postgres container not available")
	}

	migrateOnce.Do(func() {
		migrateErr = database.Migrate(context.Background(), testPool, migrations.FS)
	})
	if migrateErr != nil {
		t.Fatalf("apply migrations: %v", migrateErr)
	}
}

// truncate empties the given tables between tests that share the container
func truncate(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		if _, err := testPool.Exec(context.Background(), "TRUNCATE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
}
