// dto/progress.go
package dto

import (
	"time"

	"github.com/brainwave-labs/quest_api/model"
)

// PlayedGameRequest is one finished game reported by the client. EventID is
// an optional client-generated idempotency key; a repeated id is rejected
// instead of being applied twice.
type PlayedGameRequest struct {
	EventID          string `json:"event_id"`
	Type             string `json:"type" validate:"required"`
	Name             string `json:"name" validate:"required"`
	LevelName        string `json:"level_name"`
	StageName        string `json:"stage_name"`
	Score            int    `json:"score" validate:"gte=0,ltefield=MaxScore"`
	MaxScore         int    `json:"max_score" validate:"gte=1"`
	TimeSpentSeconds int    `json:"time_spent_seconds" validate:"gte=0"`
	CorrectAnswers   int    `json:"correct_answers" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions   int    `json:"total_questions" validate:"gte=0"`
}

func (r PlayedGameRequest) Validate() error {
	return GetValidator().Struct(r)
}

type RecordGameResponse struct {
	XPEarned             int                         `json:"xp_earned"`
	NewLevel             int                         `json:"new_level"`
	LeveledUp            bool                        `json:"leveled_up"`
	Streak               int                         `json:"streak"`
	UnlockedAchievements []model.UnlockedAchievement `json:"unlocked_achievements"`
}

type StageCompletionRequest struct {
	LevelName    string `json:"level_name" validate:"required"`
	LevelType    string `json:"level_type"`
	StageName    string `json:"stage_name" validate:"required"`
	StageNumber  int    `json:"stage_number" validate:"gte=1"`
	CategoryName string `json:"category_name"`
	CategoryType string `json:"category_type"`
	TotalLessons int    `json:"total_lessons" validate:"gte=0"`
	Score        int    `json:"score" validate:"gte=0,ltefield=MaxScore"`
	MaxScore     int    `json:"max_score" validate:"gte=1"`
	TimeSpent    int    `json:"time_spent_seconds" validate:"gte=0"`
	XPReward     int    `json:"xp_reward" validate:"gte=0"`
}

func (r StageCompletionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type StageCompletionResponse struct {
	XPEarned             int                         `json:"xp_earned"`
	NewLevel             int                         `json:"new_level"`
	Streak               int                         `json:"streak"`
	StageCompleted       bool                        `json:"stage_completed"`
	UnlockedAchievements []model.UnlockedAchievement `json:"unlocked_achievements"`
}

type ProgressResponse struct {
	UserID        string                      `json:"user_id"`
	TotalXP       int                         `json:"total_xp"`
	Level         int                         `json:"level"`
	XPToNextLevel int                         `json:"xp_to_next_level"`
	Streak        int                         `json:"streak"`
	Statistics    model.Statistics            `json:"statistics"`
	Levels        []model.LevelProgress       `json:"levels"`
	Categories    []model.CategoryProgress    `json:"categories"`
	Achievements  []model.UnlockedAchievement `json:"achievements"`
	DailyProgress []model.DailyEntry          `json:"daily_progress"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

type RecentGamesResponse struct {
	Games []model.PlayedGame `json:"games"`
	Total int                `json:"total"`
}

type CheckAchievementsResponse struct {
	Unlocked []model.UnlockedAchievement `json:"unlocked"`
}
