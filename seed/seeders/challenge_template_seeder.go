package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/model"
)

// ChallengeTemplateSeeder installs the rotating daily challenge pool
type ChallengeTemplateSeeder struct {
	db *gorm.DB
}

func NewChallengeTemplateSeeder(db *gorm.DB) *ChallengeTemplateSeeder {
	return &ChallengeTemplateSeeder{db: db}
}

func (s *ChallengeTemplateSeeder) SeedTemplates() error {
	templates := []model.ChallengeTemplate{
		{
			ChallengeType: "games_played",
			Title:         "Daily Dozen",
			Description:   "Play 3 games today",
			TargetValue:   3,
			XPBonus:       50,
			IsActive:      true,
		},
		{
			ChallengeType: "correct_answers",
			Title:         "Sharp Mind",
			Description:   "Answer 20 questions correctly today",
			TargetValue:   20,
			XPBonus:       75,
			IsActive:      true,
		},
		{
			ChallengeType: "xp_earned",
			Title:         "XP Hunter",
			Description:   "Earn 200 XP today",
			TargetValue:   200,
			XPBonus:       100,
			StreakBonus:   1,
			IsActive:      true,
		},
		{
			ChallengeType: "play_time",
			Title:         "Study Session",
			Description:   "Spend 15 minutes playing today",
			TargetValue:   900,
			XPBonus:       60,
			IsActive:      true,
		},
	}

	created := 0
	for i := range templates {
		var existing model.ChallengeTemplate
		err := s.db.Where("title = ?", templates[i].Title).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		id, _ := uuid.NewV7()
		templates[i].ID = id.String()
		if err := s.db.Create(&templates[i]).Error; err != nil {
			log.Printf("Error creating challenge template %s: %v", templates[i].Title, err)
			return err
		}
		created++
	}

	log.Printf("Seeded %d challenge templates (%d already present)", created, len(templates)-created)
	return nil
}
