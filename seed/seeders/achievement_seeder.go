package seeders

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/shared"
)

// AchievementSeeder installs the starter achievement catalog
type AchievementSeeder struct {
	db *gorm.DB
}

func NewAchievementSeeder(db *gorm.DB) *AchievementSeeder {
	return &AchievementSeeder{db: db}
}

func (s *AchievementSeeder) SeedAchievements() error {
	catalog := starterCatalog()

	created := 0
	for i := range catalog {
		var existing model.Achievement
		err := s.db.Where("achievement_id = ?", catalog[i].AchievementID).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		id, _ := uuid.NewV7()
		catalog[i].ID = id.String()
		if err := s.db.Create(&catalog[i]).Error; err != nil {
			log.Printf("Error creating achievement %s: %v", catalog[i].AchievementID, err)
			return err
		}
		created++
	}

	log.Printf("Seeded %d achievements (%d already present)", created, len(catalog)-created)
	return nil
}

func starterCatalog() []model.Achievement {
	gte := shared.OperatorGTE

	return []model.Achievement{
		{
			AchievementID: "first_steps",
			Name:          "First Steps",
			Description:   "Play your first game",
			Category:      shared.AchievementCategoryLearning,
			Icon:          "footprints",
			Rarity:        "common",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaFirstGame, Value: 1, Operator: gte},
			Points:        10,
			SortOrder:     10,
			IsActive:      true,
		},
		{
			AchievementID: "games_10",
			Name:          "Getting Warmed Up",
			Description:   "Play 10 games",
			Category:      shared.AchievementCategoryLearning,
			Icon:          "gamepad",
			Rarity:        "common",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaGamesPlayed, Value: 10, Operator: gte},
			Points:        25,
			Prerequisites: []string{"first_steps"},
			SortOrder:     20,
			IsActive:      true,
		},
		{
			AchievementID: "games_100",
			Name:          "Dedicated Player",
			Description:   "Play 100 games",
			Category:      shared.AchievementCategoryLearning,
			Icon:          "trophy",
			Rarity:        "rare",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaGamesPlayed, Value: 100, Operator: gte},
			Points:        100,
			Prerequisites: []string{"games_10"},
			Rewards:       model.AchievementRewards{XPBonus: 200},
			SortOrder:     30,
			IsActive:      true,
		},
		{
			AchievementID: "xp_5000",
			Name:          "Knowledge Seeker",
			Description:   "Earn 5000 XP",
			Category:      shared.AchievementCategoryLearning,
			Icon:          "book",
			Rarity:        "rare",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaTotalXP, Value: 5000, Operator: gte},
			Points:        150,
			SortOrder:     40,
			IsActive:      true,
		},
		{
			AchievementID: "level_5_reached",
			Name:          "Climbing the Ranks",
			Description:   "Reach level 5",
			Category:      shared.AchievementCategoryLearning,
			Icon:          "ladder",
			Rarity:        "common",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaLevelReached, Value: 5, Operator: gte},
			Points:        50,
			SortOrder:     50,
			IsActive:      true,
		},
		{
			AchievementID: "streak_7",
			Name:          "Week Warrior",
			Description:   "Keep a 7 day activity streak",
			Category:      shared.AchievementCategoryStreak,
			Icon:          "flame",
			Rarity:        "rare",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaStreakDays, Value: 7, Operator: gte},
			Points:        100,
			Rewards:       model.AchievementRewards{XPBonus: 100},
			SortOrder:     60,
			IsActive:      true,
		},
		{
			AchievementID: "streak_30",
			Name:          "Monthly Master",
			Description:   "Keep a 30 day activity streak",
			Category:      shared.AchievementCategoryStreak,
			Icon:          "calendar",
			Rarity:        "epic",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaStreakDays, Value: 30, Operator: gte},
			Points:        500,
			Prerequisites: []string{"streak_7"},
			Rewards:       model.AchievementRewards{XPBonus: 500},
			SortOrder:     70,
			IsActive:      true,
		},
		{
			AchievementID: "daily_player",
			Name:          "Back for More",
			Description:   "Play on two consecutive days",
			Category:      shared.AchievementCategoryStreak,
			Icon:          "repeat",
			Rarity:        "common",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaDailyPlayer, Value: 2, Operator: gte},
			Points:        20,
			SortOrder:     80,
			IsActive:      true,
		},
		{
			AchievementID: "perfect_10",
			Name:          "Flawless Ten",
			Description:   "Score 10 perfect games",
			Category:      shared.AchievementCategoryCollection,
			Icon:          "star",
			Rarity:        "rare",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaPerfectScores, Value: 10, Operator: gte},
			Points:        150,
			SortOrder:     90,
			IsActive:      true,
		},
		{
			AchievementID: "answers_1000",
			Name:          "Quiz Whiz",
			Description:   "Answer 1000 questions correctly",
			Category:      shared.AchievementCategoryCollection,
			Icon:          "check",
			Rarity:        "rare",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaCorrectAnswers, Value: 1000, Operator: gte},
			Points:        200,
			SortOrder:     100,
			IsActive:      true,
		},
		{
			AchievementID: "marathon",
			Name:          "Marathon",
			Description:   "Spend 10 hours playing",
			Category:      shared.AchievementCategoryCollection,
			Icon:          "clock",
			Rarity:        "epic",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaTotalPlayTime, Value: 36000, Operator: gte},
			Points:        300,
			SortOrder:     110,
			IsActive:      true,
		},
		{
			AchievementID: "completionist",
			Name:          "Completionist",
			Description:   "Complete 3 categories",
			Category:      shared.AchievementCategoryCollection,
			Icon:          "medal",
			Rarity:        "epic",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaCategoriesCompleted, Value: 3, Operator: gte},
			Points:        400,
			SortOrder:     120,
			IsActive:      true,
		},
		{
			AchievementID: "winning_streak",
			Name:          "On a Roll",
			Description:   "Win 5 games in a row",
			Category:      shared.AchievementCategorySpecial,
			Icon:          "dice",
			Rarity:        "rare",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaConsecutiveWins, Value: 5, Operator: gte},
			Points:        120,
			SortOrder:     130,
			IsActive:      true,
		},
		{
			AchievementID: "speed_demon",
			Name:          "Speed Demon",
			Description:   "Finish 10 games in under two minutes each",
			Category:      shared.AchievementCategorySpecial,
			Icon:          "bolt",
			Rarity:        "epic",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaSpeedDemon, Value: 10, Operator: gte},
			Points:        250,
			SortOrder:     140,
			IsActive:      true,
		},
		{
			AchievementID: "perfectionist",
			Name:          "Perfectionist",
			Description:   "Score perfectly in 10 games straight",
			Category:      shared.AchievementCategorySpecial,
			Icon:          "gem",
			Rarity:        "legendary",
			Criteria:      model.AchievementCriteria{Type: shared.CriteriaPerfectionist, Value: 10, Operator: gte},
			Points:        1000,
			Prerequisites: []string{"perfect_10"},
			Rewards:       model.AchievementRewards{XPBonus: 1000},
			SortOrder:     150,
			IsActive:      true,
		},
	}
}
