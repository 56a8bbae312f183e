package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/database"
	"github.com/mauv0809/player-auction/internal/importer"
	"github.com/mauv0809/player-auction/internal/registry"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{"SEED_PLAYERS": "120"}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "SEED_PLAYERS"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	if config["DB_NAME"] == "" && config["TURSO_PRIMARY_URL"] == "" {
		log.Fatalf("Error: either DB_NAME or TURSO_PRIMARY_URL must be set.")
	}
	return config
}

// loadPlayers reads the roster from the CSV named on the command line, or
// generates one with random grades.
func loadPlayers(cfg map[string]string) ([]auction.Player, error) {
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			return nil, fmt.Errorf("failed to open roster: %w", err)
		}
		defer f.Close()
		return importer.Read(f)
	}

	n, err := strconv.Atoi(cfg["SEED_PLAYERS"])
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("invalid SEED_PLAYERS %q", cfg["SEED_PLAYERS"])
	}
	grades := append([]auction.Grade{auction.GradeNone}, auction.Grades...)
	players := make([]auction.Player, n)
	for i := range players {
		players[i] = auction.Player{
			ID:        i + 1,
			Name:      fmt.Sprintf("Seeder Player %03d", i+1),
			Cricket:   grades[rand.IntN(len(grades))],
			Badminton: grades[rand.IntN(len(grades))],
			TT:        grades[rand.IntN(len(grades))],
		}
	}
	return players, nil
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()
	log.Info("Successfully connected to the database.")

	players, err := loadPlayers(cfg)
	if err != nil {
		log.Fatalf("Failed to load players: %s", err)
	}

	startTime := time.Now()
	store := registry.New(db)
	engine := auction.NewEngine(store, auction.DefaultRules(), clockwork.NewRealClock())
	if err := engine.Load(); err != nil {
		log.Fatalf("Failed to load existing state: %s", err)
	}
	if err := engine.ReplacePlayers(players, true); err != nil {
		log.Fatalf("Failed to seed players: %s", err)
	}

	sold, unsold, err := store.Stats()
	if err != nil {
		log.Fatalf("Failed to read stats: %s", err)
	}
	log.Info("Seeding complete", "sold", sold, "unsold", unsold, "duration", time.Since(startTime))
}
