package main

import (
	"errors"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/osse101/QuestAcademy_Go/migrations"
)

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Check tools, database connectivity and pending migrations"
}

func (c *DoctorCommand) Run(args []string) error {
	section("Doctor")

	problems := 0

	if err := (&CheckDepsCommand{}).Run(nil); err != nil {
		fail("tools: %v", err)
		problems++
	}

	db, err := openDB()
	if err != nil {
		fail("database: %v", err)
		return errors.New("doctor found problems")
	}
	defer db.Close()
	success("database reachable")

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	current, err := goose.GetDBVersion(db)
	if err != nil {
		fail("migration version: %v", err)
		problems++
	} else if latest := latestMigration(); current < latest {
		warn("schema at version %d, %d available; run 'devtool migrate up'", current, latest)
	} else {
		success("schema up to date (version %d)", current)
	}

	if problems > 0 {
		return errors.New("doctor found problems")
	}
	return nil
}

// latestMigration returns the highest version embedded in the binary
func latestMigration() int64 {
	var latest int64
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return 0
	}
	for _, e := range entries {
		if v, err := goose.NumericComponent(e.Name()); err == nil && v > latest {
			latest = v
		}
	}
	return latest
}
