package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	achievementSeeder := NewAchievementSeeder(s.db)
	if err := achievementSeeder.SeedAchievements(); err != nil {
		log.Printf("Achievement seeding failed: %v", err)
		return err
	}

	templateSeeder := NewChallengeTemplateSeeder(s.db)
	if err := templateSeeder.SeedTemplates(); err != nil {
		log.Printf("Challenge template seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedAchievementsOnly() error {
	return NewAchievementSeeder(s.db).SeedAchievements()
}

func (s *MainSeeder) SeedTemplatesOnly() error {
	return NewChallengeTemplateSeeder(s.db).SeedTemplates()
}
