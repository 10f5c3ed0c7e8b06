// Schema migration runner.
//
// Usage:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down-to 1
package main

import (
	"log"
	"os"
	"strconv"

	"desserts-ops/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := db.MigrateUp(dsn, dir); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Println("migrations applied")

	case "down-to":
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate down-to <version>")
		}
		version, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			log.Fatalf("invalid version: %s", os.Args[2])
		}
		if err := db.MigrateDownTo(dsn, dir, version); err != nil {
			log.Fatalf("migrate down-to: %v", err)
		}
		log.Printf("rolled back to version %d", version)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: up, down-to", cmd)
	}
}
