package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/QuestAcademy_Go/internal/config"
	"github.com/osse101/QuestAcademy_Go/internal/database"
	"github.com/osse101/QuestAcademy_Go/migrations"
)

// setup creates the configured database when missing and applies every migration
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	ctx := context.Background()

	admin, err := pgx.Connect(ctx, cfg.AdminConnString())
	if err != nil {
		log.Fatalf("Unable to reach the Postgres server: %v", err)
	}
	created, err := database.EnsureDatabase(ctx, admin, cfg.DBName)
	admin.Close(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if !created {
		log.Printf("Database %s already exists", cfg.DBName)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("Unable to connect to %s: %v", cfg.DBName, err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
		log.Fatal(err)
	}
	log.Println("Setup complete")
}
