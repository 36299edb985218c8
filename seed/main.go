// seed/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, achievements, templates")
		dbPath   = flag.String("db", "", "Database path (overrides DB_DATABASE env var)")
	)
	flag.Parse()

	databasePath := *dbPath
	if databasePath == "" {
		databasePath = os.Getenv("DB_DATABASE")
		if databasePath == "" {
			databasePath = "quest.db"
		}
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&model.Achievement{}, &model.ChallengeTemplate{}); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	log.Printf("Connected to database: %s", databasePath)

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "achievements":
		if err := mainSeeder.SeedAchievementsOnly(); err != nil {
			log.Fatalf("Failed to seed achievements: %v", err)
		}
	case "templates":
		if err := mainSeeder.SeedTemplatesOnly(); err != nil {
			log.Fatalf("Failed to seed challenge templates: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'achievements' or 'templates'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}
