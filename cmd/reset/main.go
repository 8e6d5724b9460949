package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/QuestAcademy_Go/internal/config"
	"github.com/osse101/QuestAcademy_Go/internal/database"
	"github.com/osse101/QuestAcademy_Go/migrations"
)

// reset drops and recreates the configured database, then migrates it unless -migrate=false.
// It needs -yes and never runs against a production environment.
func main() {
	confirmed := flag.Bool("yes", false, "confirm that every row in the database may be lost")
	migrate := flag.Bool("migrate", true, "apply migrations to the fresh database")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := checkAllowed(cfg, *confirmed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx := context.Background()
	if err := recreate(ctx, cfg); err != nil {
		log.Fatal(err)
	}

	if !*migrate {
		log.Printf("Database %s is empty; run ./cmd/setup to migrate it", cfg.DBName)
		return
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("Unable to connect to %s: %v", cfg.DBName, err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
		log.Fatal(err)
	}
	log.Printf("Database %s reset and migrated", cfg.DBName)
}

func checkAllowed(cfg *config.Config, confirmed bool) error {
	if cfg.Environment == config.EnvProduction {
		return fmt.Errorf("refusing to reset %s in %s", cfg.DBName, cfg.Environment)
	}
	if !confirmed {
		return fmt.Errorf("this drops database %s on %s; rerun with -yes", cfg.DBName, cfg.DBHost)
	}
	return nil
}

func recreate(ctx context.Context, cfg *config.Config) error {
	admin, err := pgx.Connect(ctx, cfg.AdminConnString())
	if err != nil {
		return fmt.Errorf("connect to Postgres server: %w", err)
	}
	defer admin.Close(ctx)

	if err := database.DropDatabase(ctx, admin, cfg.DBName); err != nil {
		return err
	}
	_, err = database.EnsureDatabase(ctx, admin, cfg.DBName)
	return err
}
