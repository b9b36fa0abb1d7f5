package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/coursekit-labs/session_api/model"
	"github.com/coursekit-labs/session_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, users, sessions")
		dbPath   = flag.String("db", "", "SQLite database path (for local development; Postgres is used otherwise)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	var dialector gorm.Dialector
	if *dbPath != "" {
		log.Printf("Seeding local SQLite database: %s", *dbPath)
		dialector = sqlite.Open(*dbPath)
	} else {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				envOr("DB_HOST", "localhost"),
				envOr("DB_USER", "postgres"),
				envOr("DB_PASSWORD", "postgres"),
				envOr("DB_NAME", "session_api"),
				envOr("DB_PORT", "5432"))
		}
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Session{}, &model.ContentItem{}, &model.ProgressRecord{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "users":
		log.Println("Seeding users only...")
		if err := mainSeeder.SeedUsersOnly(); err != nil {
			log.Fatalf("Failed to seed users: %v", err)
		}
	case "sessions":
		log.Println("Seeding sessions only...")
		if err := mainSeeder.SeedSessionsOnly(); err != nil {
			log.Fatalf("Failed to seed sessions: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'users' or 'sessions'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func showHelp() {
	log.Println(`
Database Seeding Tool for the Session API

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, users, sessions
  -db string
        SQLite database path for local development (Postgres is used otherwise)
  -help
        Show this help message

Examples:
  # Seed everything into Postgres
  go run seed/main.go

  # Seed only the demo session
  go run seed/main.go -type=sessions

  # Seed a local SQLite file
  go run seed/main.go -db=./local.db

Environment Variables:
  DATABASE_URL - Full Postgres DSN; individual DB_* variables are used otherwise`)
}
