package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/osse101/QuestAcademy_Go/internal/config"
	"github.com/osse101/QuestAcademy_Go/internal/database"
	"github.com/osse101/QuestAcademy_Go/internal/database/postgres"
	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// debug dumps everything stored for one user: go run ./cmd/debug <user_id>
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug <user_id>")
		os.Exit(1)
	}
	userID := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	fmt.Println("--- Character ---")
	character, err := postgres.NewCharacterRepository(dbPool).GetCharacter(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrCharacterNotFound):
		fmt.Println("(none)")
	case err != nil:
		log.Printf("Failed to query character: %v", err)
	default:
		dump(character)
	}

	fmt.Println("\n--- Subject Progress ---")
	if subjects, err := postgres.NewProgressRepository(dbPool).GetSubjectProgress(ctx, userID); err != nil {
		log.Printf("Failed to query subject progress: %v", err)
	} else {
		dump(subjects)
	}

	fmt.Println("\n--- Worlds ---")
	if worlds, err := postgres.NewWorldRepository(dbPool).GetWorldProgress(ctx, userID); err != nil {
		log.Printf("Failed to query world progress: %v", err)
	} else {
		dump(worlds)
	}

	fmt.Println("\n--- Achievements ---")
	if awards, err := postgres.NewAchievementRepository(dbPool).GetUserAchievements(ctx, userID); err != nil {
		log.Printf("Failed to query achievements: %v", err)
	} else {
		dump(awards)
	}

	fmt.Println("\n--- Inventory ---")
	if entries, err := postgres.NewInventoryRepository(dbPool).GetInventory(ctx, userID); err != nil {
		log.Printf("Failed to query inventory: %v", err)
	} else {
		dump(entries)
	}
}

func dump(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Failed to encode: %v", err)
		return
	}
	fmt.Println(string(out))
}
