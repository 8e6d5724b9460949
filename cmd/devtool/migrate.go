package main

import (
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"

	"github.com/osse101/QuestAcademy_Go/migrations"
)

const migrationsDir = "migrations"

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, down-to, status, version, roundtrip, create)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, down-to, status, version, roundtrip, create")
	}
	subcmd := args[0]

	// create writes a new file on disk and needs no connection
	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		goose.SetSequential(true)
		return goose.Create(nil, migrationsDir, args[1], "sql")
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch subcmd {
	case "up":
		return goose.Up(db, ".")
	case "down":
		return goose.Down(db, ".")
	case "down-to":
		if len(args) < 2 {
			return fmt.Errorf("target version required for down-to")
		}
		version, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		return goose.DownTo(db, ".", version)
	case "status":
		return goose.Status(db, ".")
	case "version":
		return goose.Version(db, ".")
	case "roundtrip":
		// Every Down must undo its Up
		section("Testing migrations (up, down to zero, up)...")
		if err := goose.Up(db, "."); err != nil {
			return fmt.Errorf("initial up failed: %w", err)
		}
		if err := goose.DownTo(db, ".", 0); err != nil {
			return fmt.Errorf("down to zero failed: %w", err)
		}
		if err := goose.Up(db, "."); err != nil {
			return fmt.Errorf("second up failed: %w", err)
		}
		success("Migrations are reversible")
		return nil
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
}
