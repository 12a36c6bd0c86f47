package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edugram-labs/edugram-api/model"
	"github.com/edugram-labs/edugram-api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType   = flag.String("type", "all", "Type of seeding: all, badges, demo")
		sqlitePath = flag.String("sqlite", "", "Seed a local SQLite file instead of Postgres")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := openDatabase(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lesson{},
		&model.UserProgress{},
		&model.Badge{},
		&model.UserBadge{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "badges":
		log.Println("Seeding badge catalog only...")
		if err := mainSeeder.SeedBadgesOnly(); err != nil {
			log.Fatalf("Failed to seed badges: %v", err)
		}
	case "demo":
		log.Println("Seeding demo content only...")
		if err := mainSeeder.SeedDemoOnly(); err != nil {
			log.Fatalf("Failed to seed demo content: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'badges', or 'demo'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

func openDatabase(sqlitePath string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	if sqlitePath != "" {
		log.Printf("Seeding local SQLite database: %s", sqlitePath)
		return gorm.Open(sqlite.Open(sqlitePath), config)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=edugram port=5432 sslmode=disable"
	}
	return gorm.Open(postgres.Open(dsn), config)
}

func showHelp() {
	log.Println(`
Database Seeding Tool for Edugram

Usage: go run seed/main.go [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, badges, demo
  -sqlite string
        Seed a local SQLite file instead of Postgres
  -help
        Show this help message

Examples:
  # Seed everything into Postgres (DATABASE_URL)
  go run seed/main.go

  # Seed only the badge catalog
  go run seed/main.go -type=badges

  # Seed a local SQLite file for development
  go run seed/main.go -sqlite=./dev.db

Environment Variables:
  DATABASE_URL - Postgres connection string`)
}
